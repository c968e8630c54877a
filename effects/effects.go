// Package effects manages the ambient sound effects layered over a channel:
// the built-in set, user-added YouTube effects, per-effect volumes, the master
// effects volume and which effects are currently playing.
package effects

import (
	"encoding/json"
	"errors"
	"fmt"
	"lofi/config"
	"lofi/log"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DefaultVolume is the volume of an effect the user never adjusted.
const DefaultVolume = 0.5

// CustomPrefix starts the id of every user-added effect.
const CustomPrefix = "custom_"

var (
	ErrNotFound   = errors.New("effect not found")
	ErrBuiltin    = errors.New("built-in effects cannot be deleted")
	ErrInvalidURL = errors.New("effect url must be a YouTube link")
	ErrMissing    = errors.New("effect name and url are required")
)

// Effect is one sound effect.
type Effect struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"file"`
	Custom bool   `json:"-"`
}

var builtins = []Effect{
	{ID: "rain", Name: "Rain", URL: "effects/rain.mp3"},
	{ID: "thunder", Name: "Thunder", URL: "effects/thunder.mp3"},
	{ID: "fireplace", Name: "Fireplace", URL: "effects/fireplace.mp3"},
	{ID: "cafe", Name: "Cafe", URL: "effects/cafe.mp3"},
	{ID: "waves", Name: "Ocean Waves", URL: "effects/waves.mp3"},
	{ID: "birds", Name: "Birds", URL: "effects/birds.mp3"},
	{ID: "vinyl", Name: "Vinyl Crackle", URL: "effects/vinyl.mp3"},
}

// Builtins returns the effects shipped with the player.
func Builtins() []Effect {
	out := make([]Effect, len(builtins))
	copy(out, builtins)
	return out
}

var youtubeHosts = map[string]bool{
	"www.youtube.com": true,
	"youtube.com":     true,
	"youtu.be":        true,
}

// ValidateURL accepts only absolute YouTube links.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if !youtubeHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("%w: host %q", ErrInvalidURL, u.Hostname())
	}
	return nil
}

// Mixer holds the effect list and volumes and persists them through an
// EffectStorage. The active set is transient.
type Mixer struct {
	storage config.EffectStorage
	custom  []Effect
	volumes map[string]float64
	master  float64
	active  map[string]bool
}

// NewMixer loads the mixer from storage. An unreadable custom effect list is
// logged and treated as empty.
func NewMixer(storage config.EffectStorage) *Mixer {
	m := &Mixer{storage: storage, active: map[string]bool{}}
	m.load()
	return m
}

func (m *Mixer) load() {
	m.custom = []Effect{}
	if raw := m.storage.GetCustomEffects(); len(raw) > 0 {
		if err := json.Unmarshal(raw, &m.custom); err != nil {
			log.ErrorLog.Printf("failed to unmarshal custom effects: %v", err)
			m.custom = []Effect{}
		}
	}
	for i := range m.custom {
		m.custom[i].Custom = true
	}
	m.volumes = m.storage.GetEffectVolumes()
	if m.volumes == nil {
		m.volumes = map[string]float64{}
	}
	m.master = clamp(m.storage.GetEffectsVolume())
}

// Reload re-reads storage after another process changed it. Effects that
// still exist keep playing.
func (m *Mixer) Reload() {
	m.load()
	for id := range m.active {
		if _, err := m.Get(id); err != nil {
			delete(m.active, id)
		}
	}
}

// All returns the built-in effects followed by the custom ones.
func (m *Mixer) All() []Effect {
	out := Builtins()
	return append(out, m.custom...)
}

// Get looks an effect up by id.
func (m *Mixer) Get(id string) (Effect, error) {
	for _, e := range m.All() {
		if e.ID == id {
			return e, nil
		}
	}
	return Effect{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add validates and appends a custom effect at the default volume.
func (m *Mixer) Add(name, rawURL string) (Effect, error) {
	name, rawURL = strings.TrimSpace(name), strings.TrimSpace(rawURL)
	if name == "" || rawURL == "" {
		return Effect{}, ErrMissing
	}
	if err := ValidateURL(rawURL); err != nil {
		return Effect{}, err
	}

	e := Effect{ID: CustomPrefix + uuid.NewString(), Name: name, URL: rawURL, Custom: true}
	m.custom = append(m.custom, e)
	m.volumes[e.ID] = DefaultVolume
	if err := m.saveCustom(); err != nil {
		return e, err
	}
	if err := m.storage.SetEffectVolumes(m.copyVolumes()); err != nil {
		return e, fmt.Errorf("failed to save effect volumes: %w", err)
	}
	return e, nil
}

// Delete removes a custom effect, its volume and its active flag.
func (m *Mixer) Delete(id string) error {
	idx := -1
	for i, e := range m.custom {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		if _, err := m.Get(id); err == nil {
			return ErrBuiltin
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.custom = append(m.custom[:idx], m.custom[idx+1:]...)
	delete(m.volumes, id)
	delete(m.active, id)
	if err := m.saveCustom(); err != nil {
		return err
	}
	if err := m.storage.SetEffectVolumes(m.copyVolumes()); err != nil {
		return fmt.Errorf("failed to save effect volumes: %w", err)
	}
	return nil
}

// Toggle flips whether the effect is playing and returns the new state.
func (m *Mixer) Toggle(id string) (bool, error) {
	if _, err := m.Get(id); err != nil {
		return false, err
	}
	if m.active[id] {
		delete(m.active, id)
		return false, nil
	}
	m.active[id] = true
	return true, nil
}

// IsActive reports whether the effect is playing.
func (m *Mixer) IsActive(id string) bool {
	return m.active[id]
}

// Active returns the ids of playing effects, sorted.
func (m *Mixer) Active() []string {
	ids := make([]string, 0, len(m.active))
	for id := range m.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Volume returns the effect's own volume, DefaultVolume if never set.
func (m *Mixer) Volume(id string) float64 {
	if v, ok := m.volumes[id]; ok {
		return v
	}
	return DefaultVolume
}

// SetVolume sets and saves the effect's own volume, clamped to [0, 1].
func (m *Mixer) SetVolume(id string, v float64) error {
	if _, err := m.Get(id); err != nil {
		return err
	}
	m.volumes[id] = clamp(v)
	if err := m.storage.SetEffectVolumes(m.copyVolumes()); err != nil {
		return fmt.Errorf("failed to save effect volumes: %w", err)
	}
	return nil
}

// MasterVolume returns the volume applied on top of every effect.
func (m *Mixer) MasterVolume() float64 {
	return m.master
}

// SetMasterVolume sets and saves the master effects volume.
func (m *Mixer) SetMasterVolume(v float64) error {
	m.master = clamp(v)
	if err := m.storage.SetEffectsVolume(m.master); err != nil {
		return fmt.Errorf("failed to save effects volume: %w", err)
	}
	return nil
}

// EffectiveVolume is what the effect actually plays at.
func (m *Mixer) EffectiveVolume(id string) float64 {
	return m.Volume(id) * m.master
}

func (m *Mixer) saveCustom() error {
	data, err := json.Marshal(m.custom)
	if err != nil {
		return fmt.Errorf("failed to marshal custom effects: %w", err)
	}
	if err := m.storage.SaveCustomEffects(data); err != nil {
		return fmt.Errorf("failed to save custom effects: %w", err)
	}
	return nil
}

func (m *Mixer) copyVolumes() map[string]float64 {
	out := make(map[string]float64, len(m.volumes))
	for k, v := range m.volumes {
		out[k] = v
	}
	return out
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
