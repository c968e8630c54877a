package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryMappedKeyHasABinding(t *testing.T) {
	for _, m := range []map[string]KeyName{GlobalKeyStringsMap, EffectsKeyStringsMap} {
		for s, name := range m {
			binding, ok := GlobalkeyBindings[name]
			if assert.True(t, ok, "no binding for %q", s) {
				assert.Contains(t, binding.Keys(), s, "binding for %q does not list it", s)
			}
		}
	}
}

func TestBindingsHaveHelp(t *testing.T) {
	for name, binding := range GlobalkeyBindings {
		assert.NotEmpty(t, binding.Help().Key, "key %d", name)
		assert.NotEmpty(t, binding.Help().Desc, "key %d", name)
	}
}
