package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay shows read-only text until any key is pressed.
type TextOverlay struct {
	content   string
	width     int
	dismissed bool
	// OnDismiss is called once when the overlay closes.
	OnDismiss func()
}

func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content, width: 60}
}

func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress closes the overlay on any key.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	if !t.dismissed {
		t.dismissed = true
		if t.OnDismiss != nil {
			t.OnDismiss()
		}
	}
	return true
}

func (t *TextOverlay) Dismissed() bool {
	return t.dismissed
}

func (t *TextOverlay) Render() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(t.width).
		Render(t.content)
}
