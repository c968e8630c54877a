package ui

import (
	"fmt"
	"lofi/effects"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// EffectRow is one effect as the panel shows it.
type EffectRow struct {
	Effect effects.Effect
	Active bool
	Volume float64
	// Effective is Volume scaled by the master effects volume.
	Effective float64
}

// EffectsPanel lists the sound effects with a cursor.
type EffectsPanel struct {
	rows          []EffectRow
	master        float64
	cursor        int
	width, height int
	styles        Styles
}

func NewEffectsPanel() *EffectsPanel {
	return &EffectsPanel{styles: DefaultStyles()}
}

func (p *EffectsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *EffectsPanel) SetStyles(s Styles) {
	p.styles = s
}

// SetRows replaces the effect rows, keeping the cursor in range.
func (p *EffectsPanel) SetRows(rows []EffectRow, master float64) {
	p.rows = rows
	p.master = master
	if p.cursor >= len(rows) {
		p.cursor = max(0, len(rows)-1)
	}
}

func (p *EffectsPanel) Up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *EffectsPanel) Down() {
	if p.cursor < len(p.rows)-1 {
		p.cursor++
	}
}

// Selected returns the effect under the cursor.
func (p *EffectsPanel) Selected() (effects.Effect, bool) {
	if len(p.rows) == 0 {
		return effects.Effect{}, false
	}
	return p.rows[p.cursor].Effect, true
}

func (p *EffectsPanel) String() string {
	s := p.styles
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.Title.Render(" Sound Effects "))
	b.WriteString(s.Muted.Render(fmt.Sprintf("  master %s %3.0f%%", VolumeBar(p.master, 10), p.master*100)))
	b.WriteString("\n\n")

	nameWidth := max(p.width-30, 8)
	for i, row := range p.rows {
		icon := s.Muted.Render(IconOff)
		if row.Active {
			icon = s.Accent.Render(IconOn)
		}
		name := row.Effect.Name
		if row.Effect.Custom {
			name += " " + IconCustom
		}
		name = runewidth.FillRight(runewidth.Truncate(name, nameWidth, "…"), nameWidth)

		line := fmt.Sprintf(" %s %s %s %3.0f%% %s", icon, name, VolumeBar(row.Volume, 10), row.Volume*100,
			s.Muted.Render(fmt.Sprintf("(%3.0f%%)", row.Effective*100)))
		style := s.Item
		if i == p.cursor {
			style = s.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Left, lipgloss.Top, b.String())
}
