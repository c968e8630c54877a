// Package harness drives Bubble Tea models from tests without a terminal.
package harness

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness wraps a tea.Model and feeds it input.
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
}

// New wraps model and sends it an initial window size.
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	t.Helper()
	h := &Harness{
		t:     t,
		model: model,
	}
	h.Resize(width, height)
	return h
}

// SendMsg passes msg to the model. The returned command is not run.
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// specialKeys maps key names to the key types bubbletea reports for them.
var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+s":    tea.KeyCtrlS,
}

// KeyMsg builds the message bubbletea would send for key, which is either
// a name like "enter" or literal text.
func KeyMsg(key string) tea.KeyMsg {
	if kt, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// Press sends each key in order and returns the last command.
func (h *Harness) Press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.SendMsg(KeyMsg(k))
	}
	return cmd
}

// Type sends text one rune at a time, the way a user types it.
func (h *Harness) Type(text string) {
	for _, r := range text {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Resize simulates a terminal resize.
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the wrapped model for type assertions.
func (h *Harness) Model() tea.Model {
	return h.model
}

func (h *Harness) Width() int {
	return h.width
}

func (h *Harness) Height() int {
	return h.height
}

// TerminalSize is a named terminal size.
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// CommonSizes covers each layout the player switches between.
var CommonSizes = []TerminalSize{
	{Name: "minimum", Width: 60, Height: 16},
	{Name: "classic", Width: 80, Height: 24},
	{Name: "standard", Width: 100, Height: 30},
	{Name: "large", Width: 160, Height: 48},
	{Name: "wide", Width: 200, Height: 20},
	{Name: "tall", Width: 70, Height: 60},
}

// RunWithSizes runs fn as a subtest for each size.
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs fn for every size in CommonSizes.
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}
