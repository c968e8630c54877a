package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"lofi/catalog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCatalog(n int) *catalog.Catalog {
	entries := make([]catalog.Entry, n)
	for i := range entries {
		entries[i] = catalog.Entry{
			Name:        fmt.Sprintf("Catalog %d", i),
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=cat%d", i),
			Description: fmt.Sprintf("built-in channel %d", i),
			Creator:     "lofi",
		}
	}
	return catalog.New(entries)
}

func customChannel(name string) Channel {
	return Draft{Name: name, URL: "https://example.com/" + name}.custom(newID())
}

// fakeStore records saves and can be told to fail.
type fakeStore struct {
	state   State
	saves   int
	saveErr error
	loadErr error
}

func (f *fakeStore) Load() (State, error) {
	if f.loadErr != nil {
		return State{}, f.loadErr
	}
	return f.state.Clone(), nil
}

func (f *fakeStore) Save(s State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.state = s.Clone()
	return nil
}

var errDiskFull = errors.New("disk full")

func newTestRegistry(t *testing.T, catalogSize int, state State) (*Registry, *fakeStore) {
	t.Helper()
	store := &fakeStore{state: state}
	r, err := New(testCatalog(catalogSize), state, store)
	require.NoError(t, err)
	return r, store
}

// fakeChannelStorage is an in-memory config.ChannelStorage.
type fakeChannelStorage struct {
	data    []byte
	saveErr error
}

func (f *fakeChannelStorage) SaveChannels(data json.RawMessage) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = append([]byte(nil), data...)
	return nil
}

func (f *fakeChannelStorage) GetChannels() json.RawMessage {
	return f.data
}
