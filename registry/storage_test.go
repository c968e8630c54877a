package registry

import (
	"encoding/json"
	"lofi/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageEmptyRecordIsDefault(t *testing.T) {
	for _, raw := range []string{"", "null", "{}"} {
		s := NewStorage(&fakeChannelStorage{data: json.RawMessage(raw)})
		state, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultState(), state)
	}
}

func TestStorageRoundTrip(t *testing.T) {
	backend := &fakeChannelStorage{}
	s := NewStorage(backend)

	state := DefaultState()
	state.CustomChannels = []Channel{customChannel("a")}
	state.HiddenCatalogIndices = []int{0, 2}
	state.SelectedIndex = 1
	require.NoError(t, s.Save(state))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(backend.data, &raw))
	assert.EqualValues(t, CurrentVersion, raw["version"])
	assert.Contains(t, raw, "hidden_catalog_indices")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestStorageRejectsNewerVersion(t *testing.T) {
	s := NewStorage(&fakeChannelStorage{data: json.RawMessage(`{"version":99}`)})
	_, err := s.Load()
	assert.Error(t, err)
}

func TestStorageCorruptRecord(t *testing.T) {
	s := NewStorage(&fakeChannelStorage{data: json.RawMessage(`{"custom_channels":"nope"}`)})
	state, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, DefaultState(), state)
}

func TestStorageSaveError(t *testing.T) {
	s := NewStorage(&fakeChannelStorage{saveErr: errDiskFull})
	assert.ErrorIs(t, s.Save(DefaultState()), errDiskFull)
}

func TestStorageOnStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.StateFileName)
	cat := testCatalog(3)

	r, err := Open(cat, NewStorage(config.LoadStateFrom(path)))
	require.NoError(t, err)
	added, err := r.Add(Draft{Name: "Mine", URL: "http://mine"})
	require.NoError(t, err)
	_, err = r.Delete(0)
	require.NoError(t, err)
	_, err = r.Select(2)
	require.NoError(t, err)

	reopened, err := Open(cat, NewStorage(config.LoadStateFrom(path)))
	require.NoError(t, err)
	assert.Equal(t, r.Visible(), reopened.Visible())
	assert.Equal(t, 2, reopened.SelectedIndex())
	assert.Equal(t, added.ID, reopened.Selected().ID)
}
