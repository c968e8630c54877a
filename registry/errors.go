package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid channel")
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("channel not found")
	// ErrLastChannel is returned when a delete would leave no channel.
	ErrLastChannel = errors.New("cannot delete the last remaining channel")
	// ErrEmptyRegistry is returned when neither the catalog nor the custom
	// list has a single channel to show.
	ErrEmptyRegistry = errors.New("no channels available")
)

// ValidationError reports a missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("channel %s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a visible index outside [0, Length).
type NotFoundError struct {
	Index  int
	Length int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no channel at index %d (have %d)", e.Index, e.Length)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WarningKind classifies a repaired inconsistency in persisted state.
type WarningKind int

const (
	WarnHiddenOutOfRange WarningKind = iota
	WarnHiddenDuplicate
	WarnSelectionOutOfRange
	WarnAllHidden
	WarnMissingID
	WarnDuplicateID
)

func (k WarningKind) String() string {
	switch k {
	case WarnHiddenOutOfRange:
		return "hidden index out of range"
	case WarnHiddenDuplicate:
		return "duplicate hidden index"
	case WarnSelectionOutOfRange:
		return "selection out of range"
	case WarnAllHidden:
		return "every channel hidden"
	case WarnMissingID:
		return "custom channel without id"
	case WarnDuplicateID:
		return "duplicate custom channel id"
	default:
		return "unknown"
	}
}

// Warning is an inconsistency found in persisted state and repaired in place.
// These never surface as errors: they come from state drift between sessions,
// such as a catalog that shrank.
type Warning struct {
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
