package layout

// Constraints holds the computed size of every region of the player screen.
type Constraints struct {
	TerminalWidth  int
	TerminalHeight int
	Mode           LayoutMode

	ListWidth   int
	ListHeight  int
	PaneWidth   int
	PaneHeight  int
	MenuHeight  int
	ErrBoxWidth int

	// UseVerticalStack puts the now-playing pane above the list.
	UseVerticalStack bool
	ShowMinWarning   bool
}

// ComputeConstraints lays the screen out for a terminal of the given size.
func ComputeConstraints(width, height int) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
		Mode:           DetermineMode(width, height),
		ErrBoxWidth:    width,
		ShowMinWarning: width < MinWidth || height < MinHeight,
	}

	c.MenuHeight = MenuHeight
	if c.Mode >= LayoutCompact {
		c.MenuHeight = MenuCompactHeight
	}
	content := max(height-c.MenuHeight-ErrBoxHeight, 0)

	if width < MinWidth {
		c.UseVerticalStack = true
		c.ListWidth = width
		c.PaneWidth = width
		c.PaneHeight = content / 3
		c.ListHeight = content - c.PaneHeight
		return c
	}

	c.ListWidth = listWidth(width, c.Mode)
	c.PaneWidth = width - c.ListWidth
	c.ListHeight = content
	c.PaneHeight = content
	return c
}

func listWidth(total int, mode LayoutMode) int {
	switch mode {
	case LayoutFull:
		return clamp(total*30/100, ListMinWidth, ListMaxWidth)
	case LayoutStandard:
		return clamp(total*35/100, ListMinWidth, ListMaxWidth)
	case LayoutCompact:
		return clamp(total*40/100, ListMinWidth, ListCompactWidth)
	default:
		return ListMinWidth
	}
}

// ComputeOverlaySize fits a preferred overlay size into the terminal.
func ComputeOverlaySize(termWidth, termHeight, preferredWidth, preferredHeight int) (int, int) {
	maxW := max(termWidth-OverlayMargin*2, OverlayMinWidth)
	maxH := max(termHeight-OverlayMargin*2, OverlayMinHeight)

	w := clamp(preferredWidth, OverlayMinWidth, min(maxW, OverlayMaxWidth))
	h := clamp(preferredHeight, OverlayMinHeight, min(maxH, OverlayMaxHeight))
	return w, h
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
