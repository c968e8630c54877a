package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette. The ids are what gets persisted.
type Theme struct {
	ID   string
	Name string

	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	SelectedBg lipgloss.Color
	SelectedFg lipgloss.Color
	Error      lipgloss.Color
}

// Themes lists every theme in the order the theme key cycles through them.
var Themes = []Theme{
	{
		ID: "dark", Name: "Dark",
		Accent: "#7D56F4", Text: "#dddddd", Muted: "#6B7280", Border: "#3C3C3C",
		SelectedBg: "#3C3C4C", SelectedFg: "#ffffff", Error: "#EF4444",
	},
	{
		ID: "light", Name: "Light",
		Accent: "#7D56F4", Text: "#1a1a1a", Muted: "#9CA3AF", Border: "#D1D5DB",
		SelectedBg: "#dde4f0", SelectedFg: "#1a1a1a", Error: "#de613e",
	},
	{
		ID: "retro", Name: "Retro Terminal",
		Accent: "#33ff66", Text: "#b8ffb8", Muted: "#2e8b57", Border: "#1f5f3a",
		SelectedBg: "#134d2a", SelectedFg: "#e6ffe6", Error: "#ff5555",
	},
	{
		ID: "sunset", Name: "Sunset",
		Accent: "#ff7e5f", Text: "#fde2d3", Muted: "#b07a6a", Border: "#5c3a3a",
		SelectedBg: "#6b3a4b", SelectedFg: "#fff4ec", Error: "#ff4d4d",
	},
	{
		ID: "ocean", Name: "Ocean",
		Accent: "#4fc3f7", Text: "#d6eef8", Muted: "#6a8fa3", Border: "#234154",
		SelectedBg: "#1d4e6b", SelectedFg: "#ffffff", Error: "#ff6b6b",
	},
}

// ThemeIDs returns the ids of all themes.
func ThemeIDs() []string {
	ids := make([]string, len(Themes))
	for i, t := range Themes {
		ids[i] = t.ID
	}
	return ids
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ValidateTheme rejects unknown theme ids.
func ValidateTheme(id string) error {
	if _, ok := LookupTheme(id); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", id, ThemeIDs())
	}
	return nil
}

// NextThemeID returns the theme after id, wrapping. Unknown ids start over.
func NextThemeID(id string) string {
	for i, t := range Themes {
		if t.ID == id {
			return Themes[(i+1)%len(Themes)].ID
		}
	}
	return Themes[0].ID
}

// Styles are the pre-built styles for one theme.
type Styles struct {
	Theme Theme

	Title         lipgloss.Style
	Item          lipgloss.Style
	ItemDesc      lipgloss.Style
	Selected      lipgloss.Style
	SelectedDesc  lipgloss.Style
	Accent        lipgloss.Style
	Muted         lipgloss.Style
	Text          lipgloss.Style
	Error         lipgloss.Style
	Badge         lipgloss.Style
	Pane          lipgloss.Style
	Key           lipgloss.Style
	KeyDesc       lipgloss.Style
	Separator     lipgloss.Style
	ActionKeyDesc lipgloss.Style
}

// NewStyles builds the styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Background(t.Accent).
			Foreground(lipgloss.Color("230")),
		Item: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Text),
		ItemDesc: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Muted),
		Selected: lipgloss.NewStyle().
			Padding(0, 1).
			Background(t.SelectedBg).
			Foreground(t.SelectedFg),
		SelectedDesc: lipgloss.NewStyle().
			Padding(0, 1).
			Background(t.SelectedBg).
			Foreground(t.Muted),
		Accent:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Text:      lipgloss.NewStyle().Foreground(t.Text),
		Error:     lipgloss.NewStyle().Foreground(t.Error),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(t.Accent).Padding(0, 1),
		Pane:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(1, 2),
		Key:       lipgloss.NewStyle().Foreground(t.Muted),
		KeyDesc:   lipgloss.NewStyle().Foreground(t.Text),
		Separator: lipgloss.NewStyle().Foreground(t.Border),
		ActionKeyDesc: lipgloss.NewStyle().
			Foreground(t.Accent),
	}
}

// DefaultStyles are the styles of the first theme.
func DefaultStyles() Styles {
	return NewStyles(Themes[0])
}

// Status icons
const (
	IconPlaying = "▶"
	IconPaused  = "⏸"
	IconCustom  = "★"
	IconNow     = "♪"
	IconOn      = "●"
	IconOff     = "○"
)
