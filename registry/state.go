package registry

import (
	"fmt"
	"lofi/catalog"

	"github.com/google/uuid"
)

// CurrentVersion is the version of the persisted State record.
const CurrentVersion = 1

// State is the single persisted record behind the registry. The visible list
// is never stored; it is derived from these facts.
type State struct {
	Version              int       `json:"version"`
	CustomChannels       []Channel `json:"custom_channels"`
	HiddenCatalogIndices []int     `json:"hidden_catalog_indices"`
	SelectedIndex        int       `json:"selected_index"`
}

// DefaultState is the state of a fresh install.
func DefaultState() State {
	return State{
		Version:              CurrentVersion,
		CustomChannels:       []Channel{},
		HiddenCatalogIndices: []int{},
		SelectedIndex:        0,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Version:              s.Version,
		CustomChannels:       make([]Channel, len(s.CustomChannels)),
		HiddenCatalogIndices: make([]int, len(s.HiddenCatalogIndices)),
		SelectedIndex:        s.SelectedIndex,
	}
	copy(out.CustomChannels, s.CustomChannels)
	copy(out.HiddenCatalogIndices, s.HiddenCatalogIndices)
	return out
}

// Normalize repairs any combination of persisted facts into a state that
// satisfies the registry invariants:
//   - hidden indices are in range, unique and sorted
//   - every custom channel has a unique id and the custom tag
//   - at least one channel is visible, unhiding the catalog if needed
//   - the selection points into the visible list
//
// Each repair is reported as a Warning. It fails only when there is nothing to
// show at all.
func Normalize(cat *catalog.Catalog, s State) (State, []Warning, error) {
	out := s.Clone()
	out.Version = CurrentVersion

	hidden, warnings := SanitizeHidden(out.HiddenCatalogIndices, cat.Len())
	out.HiddenCatalogIndices = hidden

	seen := make(map[uuid.UUID]bool, len(out.CustomChannels))
	for i := range out.CustomChannels {
		c := &out.CustomChannels[i]
		c.IsCustom = true
		c.OriginalIndex = NoOriginalIndex
		switch {
		case c.ID == uuid.Nil:
			c.ID = newID()
			warnings = append(warnings, Warning{
				Kind:   WarnMissingID,
				Detail: fmt.Sprintf("assigned %s to %q", c.ID, c.Name),
			})
		case seen[c.ID]:
			old := c.ID
			c.ID = newID()
			warnings = append(warnings, Warning{
				Kind:   WarnDuplicateID,
				Detail: fmt.Sprintf("reassigned %q from %s to %s", c.Name, old, c.ID),
			})
		}
		seen[c.ID] = true
	}

	length := countVisibleCatalog(cat.Len(), out.HiddenCatalogIndices) + len(out.CustomChannels)
	if length == 0 && cat.Len() > 0 {
		warnings = append(warnings, Warning{
			Kind:   WarnAllHidden,
			Detail: fmt.Sprintf("restored %d hidden catalog channels", len(out.HiddenCatalogIndices)),
		})
		out.HiddenCatalogIndices = []int{}
		length = cat.Len()
	}
	if length == 0 {
		return out, warnings, ErrEmptyRegistry
	}

	if out.SelectedIndex < 0 || out.SelectedIndex >= length {
		clamped := min(max(out.SelectedIndex, 0), length-1)
		warnings = append(warnings, Warning{
			Kind:   WarnSelectionOutOfRange,
			Detail: fmt.Sprintf("selection %d moved to %d", out.SelectedIndex, clamped),
		})
		out.SelectedIndex = clamped
	}

	return out, warnings, nil
}
