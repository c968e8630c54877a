package registry

import (
	"fmt"
	"lofi/catalog"
	"lofi/log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry owns the channel state and the derived visible list. Every
// operation goes through Reduce; a successful change is saved to the store.
// When the save fails the in-memory change is kept and the wrapped error is
// returned, so the caller can tell the user their change is not on disk.
type Registry struct {
	mu sync.RWMutex

	catalog *catalog.Catalog
	store   Store
	state   State

	// visible caches DeriveVisible for the current state. nil means stale.
	visible []Channel

	// progress is the playback position of the selected channel. It is
	// transient and never persisted.
	progress time.Duration

	warnings []Warning
}

// New builds a registry from an initial state. The state is normalized first;
// repairs are logged and available from Warnings.
func New(cat *catalog.Catalog, state State, store Store) (*Registry, error) {
	if store == nil {
		store = NewMemoryStore(state)
	}
	r := &Registry{catalog: cat, store: store}
	if err := r.reset(state); err != nil {
		return nil, err
	}
	return r, nil
}

// Open loads the state from store and builds a registry from it. A record
// that cannot be decoded is logged and replaced with the default state.
func Open(cat *catalog.Catalog, store Store) (*Registry, error) {
	state, err := store.Load()
	if err != nil {
		log.ErrorLog.Printf("failed to load channel state, using defaults: %v", err)
		state = DefaultState()
	}
	return New(cat, state, store)
}

func (r *Registry) reset(state State) error {
	normalized, warnings, err := Normalize(r.catalog, state)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.WarningLog.Printf("channel state repaired: %s", w)
	}
	r.state = normalized
	r.visible = nil
	r.warnings = warnings
	return nil
}

// Reload re-reads the store, for when another process changed it.
func (r *Registry) Reload() error {
	state, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to reload channels: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.state.SelectedIndex
	if err := r.reset(state); err != nil {
		return err
	}
	if r.state.SelectedIndex != prev {
		r.progress = 0
	}
	return nil
}

// State returns a copy of the current state record.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Warnings returns the repairs made the last time state was loaded.
func (r *Registry) Warnings() []Warning {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// derived returns the cached visible list, rebuilding it if stale. The caller
// must hold the lock; the returned slice must not be handed out.
func (r *Registry) derived() []Channel {
	if r.visible == nil {
		r.visible = DeriveVisible(r.catalog, r.state.HiddenCatalogIndices, r.state.CustomChannels)
	}
	return r.visible
}

// Visible returns a copy of the visible channel list.
func (r *Registry) Visible() []Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.derived()
	out := make([]Channel, len(v))
	copy(out, v)
	return out
}

// Len returns the number of visible channels.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.derived())
}

// At returns the visible channel at i.
func (r *Registry) At(i int) (Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.derived()
	if err := checkIndex(i, len(v)); err != nil {
		return Channel{}, err
	}
	return v[i], nil
}

// IndexOf returns the current visible index of the channel with id. The
// index of a channel moves when channels before it are added, hidden or
// deleted, so callers holding on to a channel resolve it again before acting.
func (r *Registry) IndexOf(id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.derived()
	for i, c := range v {
		if c.ID == id {
			return i, nil
		}
	}
	return 0, &NotFoundError{Index: -1, Length: len(v)}
}

// SelectedIndex returns the index of the active channel.
func (r *Registry) SelectedIndex() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.SelectedIndex
}

// Selected returns the active channel.
func (r *Registry) Selected() Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.derived()[r.state.SelectedIndex]
}

// Progress returns the playback position of the active channel.
func (r *Registry) Progress() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

// SetProgress records the playback position of the active channel.
func (r *Registry) SetProgress(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = max(d, 0)
}

// Select makes the channel at index active and resets progress.
func (r *Registry) Select(index int) (Channel, error) {
	return r.Dispatch(SelectAction{Index: index})
}

// Advance moves the selection one step, wrapping at either end.
func (r *Registry) Advance(dir Direction) (Channel, error) {
	return r.Dispatch(AdvanceAction{Direction: dir})
}

// Add appends a custom channel and returns it. The selection is unchanged.
func (r *Registry) Add(d Draft) (Channel, error) {
	return r.Dispatch(AddAction{Draft: d})
}

// Edit replaces the channel at index. A catalog channel is hidden and an
// edited copy is appended as a custom channel.
func (r *Registry) Edit(index int, d Draft) (Channel, error) {
	return r.Dispatch(EditAction{Index: index, Draft: d})
}

// Delete removes a custom channel or hides a catalog channel and returns
// what was deleted.
func (r *Registry) Delete(index int) (Channel, error) {
	return r.Dispatch(DeleteAction{Index: index})
}

// Dispatch applies a to the registry. On a validation or lookup error nothing
// changes. On a save error the change is kept and the error is returned along
// with the affected channel.
func (r *Registry) Dispatch(a Action) (Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, effect, err := Reduce(r.catalog, r.state, a)
	if err != nil {
		log.RegistryTrace(a.Name(), "rejected %+v: %v", a, err)
		return Channel{}, err
	}

	prevSelected := r.state.SelectedIndex
	r.state = next
	r.visible = nil
	if effect.SelectionChanged {
		r.progress = 0
	}
	log.RegistryTrace(a.Name(), "%+v -> selected %d of %d (was %d)",
		a, next.SelectedIndex, len(r.derived()), prevSelected)

	if !effect.Changed {
		return effect.Channel, nil
	}
	if err := r.store.Save(next); err != nil {
		log.ErrorLog.Printf("failed to persist %s: %v", a.Name(), err)
		return effect.Channel, fmt.Errorf("failed to persist %s: %w", a.Name(), err)
	}
	return effect.Channel, nil
}
