package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ErrBox shows the most recent error on a single line.
type ErrBox struct {
	height, width int
	err           error
	style         lipgloss.Style
}

func NewErrBox() *ErrBox {
	return &ErrBox{style: DefaultStyles().Error}
}

func (e *ErrBox) SetError(err error) {
	e.err = err
}

func (e *ErrBox) Clear() {
	e.err = nil
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) SetStyles(s Styles) {
	e.style = s.Error
}

// Error returns the error being shown, if any.
func (e *ErrBox) Error() error {
	return e.err
}

func (e *ErrBox) String() string {
	var text string
	if e.err != nil {
		// Multi-line errors (errors.Join) are shown on one line.
		text = strings.Join(strings.Fields(e.err.Error()), " ")
		if e.width > 3 {
			text = runewidth.Truncate(text, e.width, "...")
		}
	}
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Top, e.style.Render(text))
}
