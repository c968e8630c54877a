package ui

import (
	"fmt"
	"lofi/registry"
	"lofi/ui/layout"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// List renders the visible channels. The cursor is what edit and delete act
// on; the playing index is the registry's selection.
type List struct {
	channels      []registry.Channel
	cursor        int
	playing       int
	offset        int
	height, width int
	styles        Styles
	degradation   layout.Degradation
}

func NewList() *List {
	return &List{styles: DefaultStyles()}
}

// SetSize sets the height and width of the list.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scrollToCursor()
}

func (l *List) SetStyles(s Styles) {
	l.styles = s
}

func (l *List) SetDegradation(d layout.Degradation) {
	l.degradation = d
	l.scrollToCursor()
}

// SetChannels replaces the channels and the playing index. The cursor is kept
// in range.
func (l *List) SetChannels(channels []registry.Channel, playing int) {
	l.channels = channels
	l.playing = playing
	if l.cursor >= len(channels) {
		l.cursor = max(0, len(channels)-1)
	}
	l.scrollToCursor()
}

func (l *List) NumChannels() int {
	return len(l.channels)
}

// Cursor returns the index under the cursor.
func (l *List) Cursor() int {
	return l.cursor
}

// SetCursor moves the cursor. Noop if the index is out of bounds.
func (l *List) SetCursor(idx int) {
	if idx < 0 || idx >= len(l.channels) {
		return
	}
	l.cursor = idx
	l.scrollToCursor()
}

// CursorChannel returns the channel under the cursor.
func (l *List) CursorChannel() (registry.Channel, bool) {
	if len(l.channels) == 0 {
		return registry.Channel{}, false
	}
	return l.channels[l.cursor], true
}

// Up moves the cursor to the previous channel.
func (l *List) Up() {
	if l.cursor > 0 {
		l.cursor--
		l.scrollToCursor()
	}
}

// Down moves the cursor to the next channel.
func (l *List) Down() {
	if l.cursor < len(l.channels)-1 {
		l.cursor++
		l.scrollToCursor()
	}
}

// visibleRows is how many channels fit below the title.
func (l *List) visibleRows() int {
	const titleRows = 3
	rows := (l.height - titleRows) / l.degradation.RowHeight()
	return max(rows, 1)
}

func (l *List) scrollToCursor() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(0, min(l.offset, len(l.channels)-rows))
}

func (l *List) renderRow(ch registry.Channel, idx int) string {
	prefix := fmt.Sprintf(" %2d. ", idx+1)
	marker := "  "
	if idx == l.playing {
		marker = IconNow + " "
	}
	suffix := ""
	if ch.IsCustom {
		suffix = " " + IconCustom
	}

	titleS, descS := l.styles.Item, l.styles.ItemDesc
	if idx == l.cursor {
		titleS, descS = l.styles.Selected, l.styles.SelectedDesc
	}

	// 2 for the row padding
	inner := max(l.width-2, 0)
	avail := inner - runewidth.StringWidth(prefix) - runewidth.StringWidth(marker) - runewidth.StringWidth(suffix)
	name := ch.Name
	if avail > 0 {
		name = runewidth.Truncate(name, avail, "…")
	}
	title := titleS.Width(l.width).Render(prefix + marker + name + suffix)
	if l.degradation.IsCompactMode() {
		return title
	}

	creator := ch.Creator
	if creator == "" {
		creator = "unknown"
	}
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix)+runewidth.StringWidth(marker))
	creatorLine := "by " + creator
	if avail > 3 {
		creatorLine = runewidth.Truncate(creatorLine, avail, "…")
	}
	desc := descS.Width(l.width).Render(indent + creatorLine)
	return lipgloss.JoinVertical(lipgloss.Left, title, desc)
}

func (l *List) String() string {
	const titleText = " Channels "

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.Place(l.width, 1, lipgloss.Left, lipgloss.Bottom,
		l.styles.Title.Render(titleText)+l.styles.Muted.Render(fmt.Sprintf(" %d", len(l.channels)))))
	b.WriteString("\n\n")

	rows := l.visibleRows()
	end := min(l.offset+rows, len(l.channels))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(l.channels[i], i))
		if i != end-1 {
			if l.degradation.IsCompactMode() {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
}
