package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field describes one input of a FormOverlay.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
}

// FormOverlay is a modal with one text input per field. Tab and shift+tab
// move between fields, enter on the last field submits, esc cancels.
type FormOverlay struct {
	title     string
	labels    []string
	inputs    []textinput.Model
	focus     int
	submitted bool
	canceled  bool
	width     int

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewFormOverlay creates a form with the first field focused.
func NewFormOverlay(title string, fields []Field) *FormOverlay {
	f := &FormOverlay{
		title:      title,
		width:      60,
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		labelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
	}
	for _, field := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = field.Placeholder
		ti.CharLimit = field.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 256
		}
		ti.SetValue(field.Value)
		f.labels = append(f.labels, field.Label)
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

// SetAccent recolors the overlay for the current theme.
func (f *FormOverlay) SetAccent(c lipgloss.TerminalColor) {
	f.titleStyle = f.titleStyle.Foreground(c)
	f.boxStyle = f.boxStyle.BorderForeground(c)
}

func (f *FormOverlay) SetWidth(width int) {
	f.width = width
	for i := range f.inputs {
		f.inputs[i].Width = max(width-10, 10)
	}
}

func (f *FormOverlay) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Focused returns the index of the focused field.
func (f *FormOverlay) Focused() int {
	return f.focus
}

// HandleKeyPress processes a key press and returns true when the form should close.
func (f *FormOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		f.canceled = true
		return true
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return false
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return false
	case tea.KeyEnter:
		if f.focus < len(f.inputs)-1 {
			f.setFocus(f.focus + 1)
			return false
		}
		f.submitted = true
		return true
	case tea.KeyCtrlS:
		f.submitted = true
		return true
	}

	if len(f.inputs) == 0 {
		return false
	}
	f.inputs[f.focus], _ = f.inputs[f.focus].Update(msg)
	return false
}

// IsSubmitted reports whether the form was submitted rather than canceled.
func (f *FormOverlay) IsSubmitted() bool {
	return f.submitted
}

// Value returns the current text of field i.
func (f *FormOverlay) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

// Values returns the text of every field in order.
func (f *FormOverlay) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = f.inputs[i].Value()
	}
	return out
}

func (f *FormOverlay) Render() string {
	var b strings.Builder
	b.WriteString(f.titleStyle.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		b.WriteString("\n")
		b.WriteString(f.labelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.labelStyle.Render("tab next • enter submit • esc cancel"))
	return f.boxStyle.Width(f.width).Render(b.String())
}
