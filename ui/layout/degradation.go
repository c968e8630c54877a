package layout

// Degradation flags the features dropped first as the terminal shrinks.
type Degradation struct {
	HideCreators     bool // second line of each list row
	HideDescription  bool // description in the now-playing pane
	HideEffects      bool // active effects in the now-playing pane
	SingleLineMenu   bool
	ShowMinWarning   bool
	UseVerticalStack bool
}

const (
	CreatorHideHeight     = 24
	DescriptionHideHeight = 20
	EffectsHideHeight     = 22
	DescriptionHideWidth  = 70
)

// ComputeDegradation derives the flags from the constraints.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideCreators:     c.TerminalHeight < CreatorHideHeight,
		HideDescription:  c.TerminalHeight < DescriptionHideHeight || c.TerminalWidth < DescriptionHideWidth,
		HideEffects:      c.TerminalHeight < EffectsHideHeight,
		SingleLineMenu:   c.MenuHeight == MenuCompactHeight,
		ShowMinWarning:   c.ShowMinWarning,
		UseVerticalStack: c.UseVerticalStack,
	}
}

// IsCompactMode reports whether list rows are rendered on one line.
func (d Degradation) IsCompactMode() bool {
	return d.HideCreators
}

// RowHeight is the number of lines one list row takes, separator included.
func (d Degradation) RowHeight() int {
	if d.IsCompactMode() {
		return 1
	}
	return 3
}
