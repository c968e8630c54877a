// Package layout sizes the player's panes for the current terminal.
package layout

// LayoutMode represents the current layout mode based on terminal dimensions.
type LayoutMode int

const (
	LayoutFull LayoutMode = iota
	LayoutStandard
	LayoutCompact
	// LayoutMinimal is below MinWidth or MinHeight.
	LayoutMinimal
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineMode picks the mode for the more restrictive of the two dimensions.
func DetermineMode(width, height int) LayoutMode {
	return max(modeFor(width, MinWidth, StandardWidth, FullWidth),
		modeFor(height, MinHeight, StandardHeight, FullHeight))
}

func modeFor(v, minimum, standard, full int) LayoutMode {
	switch {
	case v >= full:
		return LayoutFull
	case v >= standard:
		return LayoutStandard
	case v >= minimum:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
