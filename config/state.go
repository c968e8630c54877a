package config

import (
	"encoding/json"
	"fmt"
	"lofi/log"
	"os"
	"path/filepath"
	"time"
)

const (
	StateFileName = "state.json"

	DefaultVolume        = 0.7
	DefaultTheme         = "dark"
	DefaultEffectsVolume = 0.5
)

// ChannelStorage persists the channel registry record.
type ChannelStorage interface {
	// SaveChannels saves the raw channel record
	SaveChannels(channelsJSON json.RawMessage) error
	// GetChannels returns the raw channel record
	GetChannels() json.RawMessage
}

// EffectStorage persists sound effect settings.
type EffectStorage interface {
	// SaveCustomEffects saves the raw custom effect list
	SaveCustomEffects(effectsJSON json.RawMessage) error
	// GetCustomEffects returns the raw custom effect list
	GetCustomEffects() json.RawMessage
	GetEffectVolumes() map[string]float64
	SetEffectVolumes(volumes map[string]float64) error
	GetEffectsVolume() float64
	SetEffectsVolume(volume float64) error
}

// Settings persists player-level preferences.
type Settings interface {
	GetVolume() float64
	SetVolume(volume float64) error
	GetTheme() string
	SetTheme(theme string) error
}

// StateManager combines every persisted value.
type StateManager interface {
	ChannelStorage
	EffectStorage
	Settings
	// Reset restores every persisted value to its default.
	Reset() error
}

// State represents the application state that persists between sessions.
// Each field is an independent value; there is no transaction across them.
type State struct {
	Volume        float64            `json:"volume"`
	Theme         string             `json:"theme"`
	EffectsVolume float64            `json:"effects_volume"`
	EffectVolumes map[string]float64 `json:"effect_volumes"`
	// CustomEffectsData stores the serialized custom effects as raw JSON
	CustomEffectsData json.RawMessage `json:"custom_effects"`
	// ChannelsData stores the serialized channel registry record as raw JSON
	ChannelsData json.RawMessage `json:"channels"`

	// lastModTime tracks when we last read the state file (not serialized)
	lastModTime time.Time `json:"-"`
	// path overrides the state file location (not serialized)
	path string `json:"-"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{
		Volume:            DefaultVolume,
		Theme:             DefaultTheme,
		EffectsVolume:     DefaultEffectsVolume,
		EffectVolumes:     map[string]float64{},
		CustomEffectsData: json.RawMessage("[]"),
		ChannelsData:      json.RawMessage("{}"),
	}
}

// StatePath returns the path of the state file.
func StatePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	statePath, err := StatePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}
	return LoadStateFrom(statePath)
}

// LoadStateFrom loads the state stored at path.
func LoadStateFrom(statePath string) *State {
	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		log.WarningLog.Printf("failed to create config directory: %v", err)
	}

	lock := NewFileLock(statePath)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	var modTime time.Time
	if info, err := os.Stat(statePath); err == nil {
		modTime = info.ModTime()
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		defaultState := DefaultState()
		defaultState.path = statePath
		if os.IsNotExist(err) {
			return defaultState
		}
		log.WarningLog.Printf("failed to get state file: %v", err)
		return defaultState
	}

	state, err := decodeState(data)
	if err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		state = DefaultState()
	}

	state.path = statePath
	state.lastModTime = modTime
	return state
}

// decodeState decodes data on top of the defaults so that values missing
// from the file keep their default.
func decodeState(data []byte) (*State, error) {
	state := DefaultState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.EffectVolumes == nil {
		state.EffectVolumes = map[string]float64{}
	}
	if len(state.CustomEffectsData) == 0 || string(state.CustomEffectsData) == "null" {
		state.CustomEffectsData = json.RawMessage("[]")
	}
	if len(state.ChannelsData) == 0 || string(state.ChannelsData) == "null" {
		state.ChannelsData = json.RawMessage("{}")
	}
	return state, nil
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	statePath := state.path
	if statePath == "" {
		p, err := StatePath()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
		statePath = p
		state.path = p
	}

	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(statePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial file.
	tmp := statePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, statePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	if info, err := os.Stat(statePath); err == nil {
		state.lastModTime = info.ModTime()
	}

	return nil
}

// Path returns the file this state is read from and written to.
func (s *State) Path() string {
	return s.path
}

// ChannelStorage interface implementation

// SaveChannels saves the raw channel record
func (s *State) SaveChannels(channelsJSON json.RawMessage) error {
	s.ChannelsData = channelsJSON
	return SaveState(s)
}

// GetChannels returns the raw channel record
func (s *State) GetChannels() json.RawMessage {
	return s.ChannelsData
}

// EffectStorage interface implementation

// SaveCustomEffects saves the raw custom effect list
func (s *State) SaveCustomEffects(effectsJSON json.RawMessage) error {
	s.CustomEffectsData = effectsJSON
	return SaveState(s)
}

// GetCustomEffects returns the raw custom effect list
func (s *State) GetCustomEffects() json.RawMessage {
	return s.CustomEffectsData
}

// GetEffectVolumes returns a copy of the per-effect volumes.
func (s *State) GetEffectVolumes() map[string]float64 {
	out := make(map[string]float64, len(s.EffectVolumes))
	for k, v := range s.EffectVolumes {
		out[k] = v
	}
	return out
}

func (s *State) SetEffectVolumes(volumes map[string]float64) error {
	s.EffectVolumes = volumes
	return SaveState(s)
}

func (s *State) GetEffectsVolume() float64 {
	return s.EffectsVolume
}

func (s *State) SetEffectsVolume(volume float64) error {
	s.EffectsVolume = volume
	return SaveState(s)
}

// Settings interface implementation

func (s *State) GetVolume() float64 {
	return s.Volume
}

func (s *State) SetVolume(volume float64) error {
	s.Volume = volume
	return SaveState(s)
}

func (s *State) GetTheme() string {
	return s.Theme
}

func (s *State) SetTheme(theme string) error {
	s.Theme = theme
	return SaveState(s)
}

// Reset restores every persisted value to its default and saves.
func (s *State) Reset() error {
	d := DefaultState()
	s.Volume = d.Volume
	s.Theme = d.Theme
	s.EffectsVolume = d.EffectsVolume
	s.EffectVolumes = d.EffectVolumes
	s.CustomEffectsData = d.CustomEffectsData
	s.ChannelsData = d.ChannelsData
	return SaveState(s)
}

// State sync methods

// GetLastModTime returns the modification time when this state was last read from disk.
func (s *State) GetLastModTime() time.Time {
	return s.lastModTime
}

// NeedsRefresh checks if the state file has been modified since it was last
// read or written by this process.
func (s *State) NeedsRefresh() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(s.lastModTime)
}

// RefreshFromDisk reloads the state from disk if it has been modified.
// Returns true if the state was refreshed, false if no refresh was needed.
func (s *State) RefreshFromDisk() (bool, error) {
	if s.path == "" || !s.NeedsRefresh() {
		return false, nil
	}

	lock := NewFileLock(s.path)
	if err := lock.RLock(); err != nil {
		return false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat state file: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("failed to read state file: %w", err)
	}

	newState, err := decodeState(data)
	if err != nil {
		return false, fmt.Errorf("failed to parse state file: %w", err)
	}

	s.Volume = newState.Volume
	s.Theme = newState.Theme
	s.EffectsVolume = newState.EffectsVolume
	s.EffectVolumes = newState.EffectVolumes
	s.CustomEffectsData = newState.CustomEffectsData
	s.ChannelsData = newState.ChannelsData
	s.lastModTime = info.ModTime()

	return true, nil
}
