package app

import (
	"fmt"
	"lofi/keys"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
var helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Width(10)

var helpSections = []struct {
	title string
	keys  []keys.KeyName
}{
	{"Channels", []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyPrev, keys.KeyNext, keys.KeyNew, keys.KeyEdit, keys.KeyDelete, keys.KeyCopy}},
	{"Playback", []keys.KeyName{keys.KeyPlayPause, keys.KeyVolumeDown, keys.KeyVolumeUp, keys.KeyMute, keys.KeyTheme}},
	{"Effects", []keys.KeyName{keys.KeyEffects, keys.KeyToggleEffect, keys.KeyEffectsVolumeDown, keys.KeyEffectsVolumeUp, keys.KeyBack}},
	{"Other", []keys.KeyName{keys.KeyRestore, keys.KeyHelp, keys.KeyQuit}},
}

func helpText() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("lofi"))
	b.WriteString("\n\nA channel is a stream you can play. Built-in channels can be edited or\n")
	b.WriteString("deleted too: the original is hidden and your copy is marked with ★.\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(helpTitleStyle.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			h := keys.GlobalkeyBindings[k].Help()
			b.WriteString(fmt.Sprintf("%s %s\n", helpKeyStyle.Render(h.Key), h.Desc))
		}
	}
	b.WriteString("\nPress any key to close.")
	return b.String()
}
