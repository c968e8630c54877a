package ui

import (
	"lofi/keys"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateEffects
	StateForm
	StateDialog
)

type Menu struct {
	options       []keys.KeyName
	groups        []int
	height, width int
	state         MenuState
	styles        Styles
	singleLine    bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

// Each state's options, as groups. The second group is the action group.
var (
	defaultMenuGroups = [][]keys.KeyName{
		{keys.KeyNew, keys.KeyEdit, keys.KeyDelete, keys.KeyCopy},
		{keys.KeyEnter, keys.KeyPlayPause, keys.KeyPrev, keys.KeyNext},
		{keys.KeyVolumeDown, keys.KeyVolumeUp, keys.KeyMute, keys.KeyTheme, keys.KeyEffects, keys.KeyHelp, keys.KeyQuit},
	}
	compactMenuGroups = [][]keys.KeyName{
		{keys.KeyNew, keys.KeyEdit, keys.KeyDelete},
		{keys.KeyEnter, keys.KeyPlayPause},
		{keys.KeyEffects, keys.KeyHelp, keys.KeyQuit},
	}
	effectsMenuGroups = [][]keys.KeyName{
		{keys.KeyNew, keys.KeyDelete},
		{keys.KeyToggleEffect, keys.KeyVolumeDown, keys.KeyVolumeUp},
		{keys.KeyEffectsVolumeDown, keys.KeyEffectsVolumeUp, keys.KeyBack, keys.KeyQuit},
	}
	formMenuGroups   = [][]keys.KeyName{{keys.KeySubmit, keys.KeyCancel}}
	dialogMenuGroups = [][]keys.KeyName{{keys.KeyCancel}}
)

func NewMenu() *Menu {
	m := &Menu{
		state:   StateDefault,
		styles:  DefaultStyles(),
		keyDown: -1,
	}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

func (m *Menu) State() MenuState {
	return m.state
}

// SetSingleLine switches to the shorter option set for small terminals.
func (m *Menu) SetSingleLine(singleLine bool) {
	m.singleLine = singleLine
	m.updateOptions()
}

func (m *Menu) SetStyles(s Styles) {
	m.styles = s
}

func (m *Menu) updateOptions() {
	var groups [][]keys.KeyName
	switch m.state {
	case StateEffects:
		groups = effectsMenuGroups
	case StateForm:
		groups = formMenuGroups
	case StateDialog:
		groups = dialogMenuGroups
	default:
		groups = defaultMenuGroups
		if m.singleLine {
			groups = compactMenuGroups
		}
	}

	m.options = m.options[:0]
	m.groups = m.groups[:0]
	for _, g := range groups {
		m.options = append(m.options, g...)
		m.groups = append(m.groups, len(m.options))
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	group := 0
	for i, k := range m.options {
		for group < len(m.groups) && i >= m.groups[group] {
			group++
		}
		binding := keys.GlobalkeyBindings[k]

		keyStyle, descStyle := m.styles.Key, m.styles.KeyDesc
		if group == 1 {
			keyStyle, descStyle = m.styles.ActionKeyDesc, m.styles.ActionKeyDesc
		}
		if m.keyDown == k {
			keyStyle = keyStyle.Underline(true)
			descStyle = descStyle.Underline(true)
		}

		s.WriteString(keyStyle.Render(binding.Help().Key))
		s.WriteString(" ")
		s.WriteString(descStyle.Render(binding.Help().Desc))

		if i == len(m.options)-1 {
			continue
		}
		if i == m.groups[group]-1 {
			s.WriteString(m.styles.Separator.Render(verticalSeparator))
		} else {
			s.WriteString(m.styles.Separator.Render(separator))
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.String())
}
