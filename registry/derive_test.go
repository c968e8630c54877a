package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveVisibleCompleteness(t *testing.T) {
	cat := testCatalog(6)
	custom := []Channel{customChannel("a"), customChannel("b")}

	tests := []struct {
		name   string
		hidden []int
		want   []int
	}{
		{name: "nothing hidden", hidden: nil, want: []int{0, 1, 2, 3, 4, 5}},
		{name: "some hidden", hidden: []int{4, 1}, want: []int{0, 2, 3, 5}},
		{name: "all hidden", hidden: []int{0, 1, 2, 3, 4, 5}, want: []int{}},
		{name: "out of range ignored", hidden: []int{-1, 9, 2}, want: []int{0, 1, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := DeriveVisible(cat, tt.hidden, custom)
			require.Len(t, visible, len(tt.want)+len(custom))

			for i, orig := range tt.want {
				assert.False(t, visible[i].IsCustom)
				assert.Equal(t, orig, visible[i].OriginalIndex)
				e, _ := cat.At(orig)
				assert.Equal(t, e.Name, visible[i].Name)
			}
			tail := visible[len(tt.want):]
			for i, c := range custom {
				assert.True(t, tail[i].IsCustom)
				assert.Equal(t, NoOriginalIndex, tail[i].OriginalIndex)
				assert.Equal(t, c.ID, tail[i].ID)
			}
		})
	}
}

func TestDeriveVisibleDoesNotAlias(t *testing.T) {
	custom := []Channel{customChannel("a")}
	visible := DeriveVisible(testCatalog(1), nil, custom)
	visible[1].Name = "changed"
	assert.Equal(t, "a", custom[0].Name)
}

func TestCatalogIDIsStable(t *testing.T) {
	cat := testCatalog(3)
	first := DeriveVisible(cat, nil, nil)
	second := DeriveVisible(cat, []int{0}, nil)

	assert.Equal(t, first[1].ID, second[0].ID, "hiding a neighbour must not change an id")
	assert.NotEqual(t, first[0].ID, first[1].ID)
}

func TestHideIsIdempotent(t *testing.T) {
	cat := testCatalog(4)
	once := hide([]int{}, 2)
	twice := hide(once, 2)

	assert.Equal(t, once, twice)
	assert.Equal(t, DeriveVisible(cat, once, nil), DeriveVisible(cat, twice, nil))
}

func TestHideDoesNotAliasInput(t *testing.T) {
	base := make([]int, 1, 4)
	base[0] = 3
	a := hide(base, 1)
	b := hide(base, 2)
	assert.Equal(t, []int{1, 3}, a)
	assert.Equal(t, []int{2, 3}, b)
}

func TestSanitizeHidden(t *testing.T) {
	clean, warnings := SanitizeHidden([]int{3, 1, 3, 7, -2}, 5)
	assert.Equal(t, []int{1, 3}, clean)
	require.Len(t, warnings, 3)

	kinds := map[WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, 2, kinds[WarnHiddenOutOfRange])
	assert.Equal(t, 1, kinds[WarnHiddenDuplicate])
}
