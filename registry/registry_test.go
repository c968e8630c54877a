package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDeleteBeforeSelectionReindex(t *testing.T) {
	r, _ := newTestRegistry(t, 5, DefaultState())
	_, err := r.Select(3)
	require.NoError(t, err)
	formerlyAt3 := r.Selected()

	_, err = r.Delete(1)
	require.NoError(t, err)

	assert.Equal(t, 2, r.SelectedIndex())
	got, err := r.At(2)
	require.NoError(t, err)
	assert.Equal(t, formerlyAt3, got)
}

func TestRegistryLastChannelGuard(t *testing.T) {
	r, store := newTestRegistry(t, 2, DefaultState())
	_, err := r.Delete(0)
	require.NoError(t, err)
	saves := store.saves

	_, err = r.Delete(0)
	assert.ErrorIs(t, err, ErrLastChannel)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, saves, store.saves, "a rejected delete is not saved")
}

func TestRegistryAddPersists(t *testing.T) {
	r, store := newTestRegistry(t, 2, DefaultState())

	added, err := r.Add(Draft{Name: "Test", URL: "http://x"})
	require.NoError(t, err)

	visible := r.Visible()
	assert.Equal(t, added, visible[len(visible)-1])
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, r.State(), store.state)
}

func TestRegistryWraparound(t *testing.T) {
	r, _ := newTestRegistry(t, 3, State{SelectedIndex: 2})

	ch, err := r.Advance(Next)
	require.NoError(t, err)
	assert.Equal(t, 0, r.SelectedIndex())
	assert.Equal(t, 0, ch.OriginalIndex)

	_, err = r.Advance(Prev)
	require.NoError(t, err)
	assert.Equal(t, 2, r.SelectedIndex())
}

func TestRegistryProgressResets(t *testing.T) {
	r, _ := newTestRegistry(t, 3, DefaultState())

	r.SetProgress(90 * time.Second)
	_, err := r.Add(Draft{Name: "x", URL: "y"})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, r.Progress(), "adding keeps playing")

	_, err = r.Select(0)
	require.NoError(t, err)
	assert.Zero(t, r.Progress())

	r.SetProgress(time.Second)
	_, err = r.Advance(Next)
	require.NoError(t, err)
	assert.Zero(t, r.Progress())

	r.SetProgress(time.Second)
	_, err = r.Delete(r.SelectedIndex())
	require.NoError(t, err)
	assert.Zero(t, r.Progress())

	r.SetProgress(-time.Second)
	assert.Zero(t, r.Progress())
}

func TestRegistrySaveFailureKeepsChange(t *testing.T) {
	r, store := newTestRegistry(t, 2, DefaultState())
	store.saveErr = errDiskFull

	added, err := r.Add(Draft{Name: "x", URL: "y"})
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, "x", added.Name)
	assert.Equal(t, 3, r.Len(), "the change stays in memory")
}

func TestRegistrySelectSameIndexDoesNotSave(t *testing.T) {
	r, store := newTestRegistry(t, 2, DefaultState())
	_, err := r.Select(0)
	require.NoError(t, err)
	assert.Zero(t, store.saves)
}

func TestRegistryVisibleIsACopy(t *testing.T) {
	r, _ := newTestRegistry(t, 2, DefaultState())
	v := r.Visible()
	v[0].Name = "mutated"
	assert.NotEqual(t, "mutated", r.Visible()[0].Name)
}

func TestRegistryCacheMatchesDerivation(t *testing.T) {
	r, _ := newTestRegistry(t, 4, DefaultState())
	steps := []func() error{
		func() error { _, err := r.Add(Draft{Name: "a", URL: "u"}); return err },
		func() error { _, err := r.Edit(1, Draft{Name: "b", URL: "u"}); return err },
		func() error { _, err := r.Delete(0); return err },
		func() error { _, err := r.Advance(Prev); return err },
	}
	for _, step := range steps {
		require.NoError(t, step())
		s := r.State()
		assert.Equal(t, DeriveVisible(r.catalog, s.HiddenCatalogIndices, s.CustomChannels), r.Visible())
	}
}

func TestRegistryWarningsOnOpen(t *testing.T) {
	store := &fakeStore{state: State{HiddenCatalogIndices: []int{9}, SelectedIndex: 5}}
	r, err := Open(testCatalog(2), store)
	require.NoError(t, err)

	assert.Equal(t, []WarningKind{WarnHiddenOutOfRange, WarnSelectionOutOfRange}, warningKinds(r.Warnings()))
	assert.Equal(t, 1, r.SelectedIndex())
}

func TestRegistryOpenFallsBackOnLoadError(t *testing.T) {
	r, err := Open(testCatalog(2), &fakeStore{loadErr: errDiskFull})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryOpenEmpty(t *testing.T) {
	_, err := Open(testCatalog(0), &fakeStore{state: DefaultState()})
	assert.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestRegistryReload(t *testing.T) {
	r, store := newTestRegistry(t, 3, DefaultState())
	r.SetProgress(time.Minute)

	other := store.state.Clone()
	other.SelectedIndex = 2
	other.CustomChannels = append(other.CustomChannels, customChannel("remote"))
	store.state = other

	require.NoError(t, r.Reload())
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 2, r.SelectedIndex())
	assert.Zero(t, r.Progress())
}

func TestRegistryAtOutOfRange(t *testing.T) {
	r, _ := newTestRegistry(t, 1, DefaultState())
	_, err := r.At(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewWithoutStoreUsesMemory(t *testing.T) {
	r, err := New(testCatalog(1), DefaultState(), nil)
	require.NoError(t, err)
	added, err := r.Add(Draft{Name: "x", URL: "y"})
	require.NoError(t, err)

	saved, err := r.store.Load()
	require.NoError(t, err)
	require.Len(t, saved.CustomChannels, 1)
	assert.Equal(t, added.ID, saved.CustomChannels[0].ID)
}

func TestRegistryIndexOfFollowsChannel(t *testing.T) {
	r, _ := newTestRegistry(t, 3, DefaultState())
	third, err := r.At(2)
	require.NoError(t, err)

	_, err = r.Delete(0)
	require.NoError(t, err)

	idx, err := r.IndexOf(third.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = r.Delete(1)
	require.NoError(t, err)
	_, err = r.IndexOf(third.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
