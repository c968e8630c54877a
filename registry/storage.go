package registry

import (
	"encoding/json"
	"fmt"
	"lofi/config"
)

// Store loads and saves the registry state record.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Storage persists the registry state through a config.ChannelStorage.
type Storage struct {
	backend config.ChannelStorage
}

// NewStorage creates a new storage on top of backend.
func NewStorage(backend config.ChannelStorage) *Storage {
	return &Storage{backend: backend}
}

// Save encodes the state and hands it to the backend.
func (s *Storage) Save(state State) error {
	state.Version = CurrentVersion
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal channel state: %w", err)
	}
	if err := s.backend.SaveChannels(data); err != nil {
		return fmt.Errorf("failed to save channel state: %w", err)
	}
	return nil
}

// Load decodes the stored state. An empty record yields the default state.
// The result is not normalized; pass it through Normalize before use.
func (s *Storage) Load() (State, error) {
	raw := s.backend.GetChannels()
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		return DefaultState(), nil
	}

	state := DefaultState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return DefaultState(), fmt.Errorf("failed to unmarshal channel state: %w", err)
	}
	if state.Version > CurrentVersion {
		return DefaultState(), fmt.Errorf("channel state version %d is newer than supported version %d", state.Version, CurrentVersion)
	}
	if state.CustomChannels == nil {
		state.CustomChannels = []Channel{}
	}
	for i := range state.CustomChannels {
		state.CustomChannels[i].IsCustom = true
		state.CustomChannels[i].OriginalIndex = NoOriginalIndex
	}
	if state.HiddenCatalogIndices == nil {
		state.HiddenCatalogIndices = []int{}
	}
	return state, nil
}

// memoryStore keeps the state in memory only.
type memoryStore struct {
	state State
}

// NewMemoryStore returns a Store that never touches disk, seeded with state.
func NewMemoryStore(state State) Store {
	return &memoryStore{state: state.Clone()}
}

func (m *memoryStore) Load() (State, error) {
	return m.state.Clone(), nil
}

func (m *memoryStore) Save(state State) error {
	m.state = state.Clone()
	return nil
}
