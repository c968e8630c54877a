package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyNext
	KeyPrev
	KeyPlayPause
	KeyNew
	KeyEdit
	KeyDelete
	KeyCopy
	KeyVolumeUp
	KeyVolumeDown
	KeyMute
	KeyTheme
	KeyEffects
	KeyRestore
	KeyHelp
	KeyQuit

	// Effects panel
	KeyToggleEffect
	KeyEffectsVolumeUp
	KeyEffectsVolumeDown
	KeyBack

	// Forms and dialogs
	KeySubmit
	KeyCancel
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"enter":  KeyEnter,
	"right":  KeyNext,
	"l":      KeyNext,
	"left":   KeyPrev,
	"h":      KeyPrev,
	" ":      KeyPlayPause,
	"n":      KeyNew,
	"e":      KeyEdit,
	"d":      KeyDelete,
	"y":      KeyCopy,
	"+":      KeyVolumeUp,
	"=":      KeyVolumeUp,
	"-":      KeyVolumeDown,
	"m":      KeyMute,
	"t":      KeyTheme,
	"f":      KeyEffects,
	"R":      KeyRestore,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// EffectsKeyStringsMap maps keys while the effects panel has focus.
var EffectsKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	" ":      KeyToggleEffect,
	"enter":  KeyToggleEffect,
	"+":      KeyVolumeUp,
	"=":      KeyVolumeUp,
	"-":      KeyVolumeDown,
	"]":      KeyEffectsVolumeUp,
	"[":      KeyEffectsVolumeDown,
	"n":      KeyNew,
	"d":      KeyDelete,
	"esc":    KeyBack,
	"f":      KeyBack,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "play"),
	),
	KeyNext: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next"),
	),
	KeyPrev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev"),
	),
	KeyPlayPause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	KeyNew: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	KeyEdit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	KeyDelete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	KeyVolumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "vol up"),
	),
	KeyVolumeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "vol down"),
	),
	KeyMute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	KeyTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	KeyEffects: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "effects"),
	),
	KeyRestore: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restore defaults"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	KeyToggleEffect: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	KeyEffectsVolumeUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "master up"),
	),
	KeyEffectsVolumeDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "master down"),
	),
	KeyBack: key.NewBinding(
		key.WithKeys("esc", "f"),
		key.WithHelp("esc", "back"),
	),

	// -- Special keybindings --

	KeySubmit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	KeyCancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
