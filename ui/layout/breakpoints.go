package layout

// Width breakpoints
const (
	// MinWidth is the narrowest terminal that gets the side-by-side layout.
	MinWidth = 60

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 90

	// FullWidth is the threshold for full layout with all features.
	FullWidth = 130
)

// Height breakpoints
const (
	// MinHeight is the shortest terminal that is rendered at all without a warning.
	MinHeight = 16

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 28

	// FullHeight is the threshold for full layout.
	FullHeight = 40
)

// Channel list constraints
const (
	ListMinWidth     = 24
	ListMaxWidth     = 48
	ListCompactWidth = 30
)

// Fixed rows
const (
	MenuHeight        = 2
	MenuCompactHeight = 1
	ErrBoxHeight      = 1
)

// Overlay constraints
const (
	OverlayMaxWidth  = 72
	OverlayMinWidth  = 36
	OverlayMaxHeight = 24
	OverlayMinHeight = 8
	OverlayMargin    = 2
)
