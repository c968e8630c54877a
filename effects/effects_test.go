package effects

import (
	"lofi/config"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMixer(t *testing.T) (*Mixer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.StateFileName)
	return NewMixer(config.LoadStateFrom(path)), path
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://YouTu.be/abc", true},
		{"https://vimeo.com/123", false},
		{"https://m.youtube.com/watch?v=abc", false},
		{"youtube.com/watch?v=abc", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidURL)
			}
		})
	}
}

func TestMixerDefaults(t *testing.T) {
	m, _ := newTestMixer(t)

	assert.Equal(t, Builtins(), m.All())
	assert.Equal(t, config.DefaultEffectsVolume, m.MasterVolume())
	for _, e := range m.All() {
		assert.Equal(t, DefaultVolume, m.Volume(e.ID))
		assert.False(t, m.IsActive(e.ID))
	}
}

func TestMixerAddAndPersist(t *testing.T) {
	m, path := newTestMixer(t)

	e, err := m.Add(" Study Rain ", "https://youtu.be/xyz")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.ID, CustomPrefix))
	assert.Equal(t, "Study Rain", e.Name)
	assert.True(t, e.Custom)
	assert.Equal(t, DefaultVolume, m.Volume(e.ID))

	reloaded := NewMixer(config.LoadStateFrom(path))
	got, err := reloaded.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Len(t, reloaded.All(), len(Builtins())+1)
}

func TestMixerAddRejects(t *testing.T) {
	m, _ := newTestMixer(t)

	_, err := m.Add("", "https://youtu.be/x")
	assert.ErrorIs(t, err, ErrMissing)
	_, err = m.Add("x", "https://example.com/x")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Len(t, m.All(), len(Builtins()))
}

func TestMixerDelete(t *testing.T) {
	m, path := newTestMixer(t)
	e, err := m.Add("Mine", "https://youtu.be/x")
	require.NoError(t, err)
	require.NoError(t, m.SetVolume(e.ID, 0.9))
	_, err = m.Toggle(e.ID)
	require.NoError(t, err)

	require.NoError(t, m.Delete(e.ID))
	assert.False(t, m.IsActive(e.ID))
	_, err = m.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	state := config.LoadStateFrom(path)
	assert.NotContains(t, state.GetEffectVolumes(), e.ID)

	assert.ErrorIs(t, m.Delete("rain"), ErrBuiltin)
	assert.ErrorIs(t, m.Delete("nope"), ErrNotFound)
}

func TestMixerToggle(t *testing.T) {
	m, _ := newTestMixer(t)

	on, err := m.Toggle("rain")
	require.NoError(t, err)
	assert.True(t, on)
	_, err = m.Toggle("thunder")
	require.NoError(t, err)
	assert.Equal(t, []string{"rain", "thunder"}, m.Active())

	on, err = m.Toggle("rain")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"thunder"}, m.Active())

	_, err = m.Toggle("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMixerVolumes(t *testing.T) {
	m, path := newTestMixer(t)

	require.NoError(t, m.SetVolume("rain", 0.8))
	require.NoError(t, m.SetMasterVolume(0.5))
	assert.InDelta(t, 0.4, m.EffectiveVolume("rain"), 1e-9)
	assert.InDelta(t, 0.25, m.EffectiveVolume("thunder"), 1e-9)

	require.NoError(t, m.SetVolume("rain", 4))
	assert.Equal(t, 1.0, m.Volume("rain"))
	require.NoError(t, m.SetMasterVolume(-1))
	assert.Equal(t, 0.0, m.MasterVolume())

	assert.ErrorIs(t, m.SetVolume("missing", 0.3), ErrNotFound)

	reloaded := NewMixer(config.LoadStateFrom(path))
	assert.Equal(t, 1.0, reloaded.Volume("rain"))
	assert.Equal(t, 0.0, reloaded.MasterVolume())
}

func TestMixerReloadKeepsActiveEffects(t *testing.T) {
	m, path := newTestMixer(t)
	e, err := m.Add("Mine", "https://youtu.be/x")
	require.NoError(t, err)
	_, err = m.Toggle(e.ID)
	require.NoError(t, err)
	_, err = m.Toggle("rain")
	require.NoError(t, err)

	other := NewMixer(config.LoadStateFrom(path))
	require.NoError(t, other.Delete(e.ID))
	require.NoError(t, other.SetMasterVolume(0.2))

	m.storage = config.LoadStateFrom(path)
	m.Reload()
	assert.Equal(t, []string{"rain"}, m.Active())
	assert.Equal(t, 0.2, m.MasterVolume())
	assert.Len(t, m.All(), len(Builtins()))
}
