package registry

import (
	"fmt"
	"lofi/catalog"
)

// Direction is the step direction for Advance.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// ParseDirection parses "next" or "prev".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next":
		return Next, nil
	case "prev":
		return Prev, nil
	default:
		return Next, fmt.Errorf("invalid direction %q (must be 'next' or 'prev')", s)
	}
}

// Action is one registry transition.
type Action interface {
	Name() string
}

// SelectAction makes the channel at Index active.
type SelectAction struct{ Index int }

// AdvanceAction steps the selection cyclically.
type AdvanceAction struct{ Direction Direction }

// AddAction appends a custom channel.
type AddAction struct{ Draft Draft }

// EditAction replaces the channel at Index.
type EditAction struct {
	Index int
	Draft Draft
}

// DeleteAction removes or hides the channel at Index.
type DeleteAction struct{ Index int }

func (SelectAction) Name() string  { return "select" }
func (AdvanceAction) Name() string { return "advance" }
func (AddAction) Name() string     { return "add" }
func (EditAction) Name() string    { return "edit" }
func (DeleteAction) Name() string  { return "delete" }

// Effect tells the owner of the state what happened beyond the new state.
type Effect struct {
	// Changed is set when the persisted facts differ from the input state.
	Changed bool
	// SelectionChanged is set when the active channel may be a different one,
	// which invalidates playback progress.
	SelectionChanged bool
	// Channel is the channel the action targeted, as it is after the action
	// for select/advance/add/edit and as it was before for delete.
	Channel Channel
}

// Reduce applies a to s and returns the next state. s is never modified. On
// error the returned state is s unchanged.
func Reduce(cat *catalog.Catalog, s State, a Action) (State, Effect, error) {
	next := s.Clone()
	visible := DeriveVisible(cat, next.HiddenCatalogIndices, next.CustomChannels)

	switch a := a.(type) {
	case SelectAction:
		if err := checkIndex(a.Index, len(visible)); err != nil {
			return s, Effect{}, err
		}
		changed := next.SelectedIndex != a.Index
		next.SelectedIndex = a.Index
		return next, Effect{Changed: changed, SelectionChanged: true, Channel: visible[a.Index]}, nil

	case AdvanceAction:
		n := len(visible)
		if n == 0 {
			return s, Effect{}, ErrEmptyRegistry
		}
		if a.Direction == Prev {
			next.SelectedIndex = (next.SelectedIndex - 1 + n) % n
		} else {
			next.SelectedIndex = (next.SelectedIndex + 1) % n
		}
		return next, Effect{
			Changed:          next.SelectedIndex != s.SelectedIndex,
			SelectionChanged: true,
			Channel:          visible[next.SelectedIndex],
		}, nil

	case AddAction:
		if err := a.Draft.Validate(); err != nil {
			return s, Effect{}, err
		}
		added := a.Draft.custom(newID())
		next.CustomChannels = append(next.CustomChannels, added)
		return next, Effect{Changed: true, Channel: added}, nil

	case EditAction:
		if err := checkIndex(a.Index, len(visible)); err != nil {
			return s, Effect{}, err
		}
		if err := a.Draft.Validate(); err != nil {
			return s, Effect{}, err
		}
		target := visible[a.Index]
		var edited Channel
		if target.HasOriginalIndex() {
			// Catalog entries are immutable: hide the original and append the
			// edited copy as a custom channel. Selection stays numerically put.
			next.HiddenCatalogIndices = hide(next.HiddenCatalogIndices, target.OriginalIndex)
			edited = a.Draft.custom(newID())
			next.CustomChannels = append(next.CustomChannels, edited)
		} else {
			i := findCustom(next.CustomChannels, target)
			if i < 0 {
				return s, Effect{}, &NotFoundError{Index: a.Index, Length: len(visible)}
			}
			edited = a.Draft.custom(target.ID)
			next.CustomChannels[i] = edited
		}
		return next, Effect{Changed: true, Channel: edited}, nil

	case DeleteAction:
		if err := checkIndex(a.Index, len(visible)); err != nil {
			return s, Effect{}, err
		}
		if len(visible) <= 1 {
			return s, Effect{}, ErrLastChannel
		}
		target := visible[a.Index]
		if target.HasOriginalIndex() {
			next.HiddenCatalogIndices = hide(next.HiddenCatalogIndices, target.OriginalIndex)
		} else {
			i := findCustom(next.CustomChannels, target)
			if i < 0 {
				return s, Effect{}, &NotFoundError{Index: a.Index, Length: len(visible)}
			}
			next.CustomChannels = append(next.CustomChannels[:i], next.CustomChannels[i+1:]...)
		}

		selectionChanged := false
		switch {
		case a.Index == next.SelectedIndex:
			next.SelectedIndex = max(0, a.Index-1)
			selectionChanged = true
		case a.Index < next.SelectedIndex:
			next.SelectedIndex--
		}
		return next, Effect{Changed: true, SelectionChanged: selectionChanged, Channel: target}, nil

	default:
		return s, Effect{}, fmt.Errorf("unknown action %T", a)
	}
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &NotFoundError{Index: i, Length: n}
	}
	return nil
}

// findCustom locates target in the custom list by id. Entries persisted
// before ids existed fall back to the first (name, url) match.
func findCustom(custom []Channel, target Channel) int {
	for i, c := range custom {
		if c.ID == target.ID {
			return i
		}
	}
	for i, c := range custom {
		if c.sameKey(target) {
			return i
		}
	}
	return -1
}
