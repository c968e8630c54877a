package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay asks a yes/no question.
type ConfirmationOverlay struct {
	message string
	width   int
	// OnConfirm is called when the user confirms with y or enter.
	OnConfirm func()
	// OnCancel is called when the user declines with n or esc.
	OnCancel func()

	ConfirmKey string
	CancelKey  string

	borderColor lipgloss.TerminalColor
}

func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message:     message,
		width:       50,
		ConfirmKey:  "y",
		CancelKey:   "n",
		borderColor: lipgloss.Color("#de613e"),
	}
}

func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// HandleKeyPress returns true when the overlay should close. Other keys are ignored.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case c.ConfirmKey, "enter":
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case c.CancelKey, "esc":
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	default:
		return false
	}
}

func (c *ConfirmationOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.borderColor).
		Padding(1, 2).
		Width(c.width)

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("Press " + c.ConfirmKey + " to confirm, " + c.CancelKey + " to cancel")
	return style.Render(c.message + "\n\n" + hint)
}
