package ui

import (
	"fmt"
	"lofi/registry"
	"lofi/ui/layout"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Playback is what the now-playing pane shows besides the channel.
type Playback struct {
	Playing       bool
	Volume        float64
	Progress      time.Duration
	ThemeName     string
	ActiveEffects []string
	EffectsVolume float64
}

// NowPlaying renders the channel header and the playback state.
type NowPlaying struct {
	channel     registry.Channel
	index       int
	playback    Playback
	spinner     *spinner.Model
	width       int
	height      int
	styles      Styles
	degradation layout.Degradation
}

func NewNowPlaying(s *spinner.Model) *NowPlaying {
	return &NowPlaying{spinner: s, styles: DefaultStyles()}
}

func (n *NowPlaying) SetSize(width, height int) {
	n.width = width
	n.height = height
}

func (n *NowPlaying) SetStyles(s Styles) {
	n.styles = s
}

func (n *NowPlaying) SetDegradation(d layout.Degradation) {
	n.degradation = d
}

// SetChannel sets the channel shown in the header and its visible index.
func (n *NowPlaying) SetChannel(ch registry.Channel, index int) {
	n.channel = ch
	n.index = index
}

func (n *NowPlaying) SetPlayback(p Playback) {
	n.playback = p
}

// ChannelLabel is the "CHn" label of the visible index.
func ChannelLabel(index int) string {
	return fmt.Sprintf("CH%d", index+1)
}

// VolumeBar draws v in [0, 1] as a bar of width cells.
func VolumeBar(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(v*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

// FormatProgress renders d as m:ss.
func FormatProgress(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (n *NowPlaying) String() string {
	// border and padding of the pane style
	inner := max(n.width-6, 10)
	s := n.styles

	var lines []string
	header := s.Badge.Render(ChannelLabel(n.index)) + " " + s.Accent.Render(n.channel.Name)
	if n.channel.IsCustom {
		header += " " + s.Muted.Render(IconCustom)
	}
	lines = append(lines, header, "")

	if !n.degradation.HideDescription && n.channel.Description != "" {
		lines = append(lines, s.Text.Render(wordwrap.String(n.channel.Description, inner)), "")
	}
	if n.channel.Creator != "" {
		lines = append(lines, s.Muted.Render("by "+n.channel.Creator))
	}
	lines = append(lines, s.Muted.Render(n.channel.URL), "")

	status := s.Muted.Render(IconPaused + " paused")
	if n.playback.Playing {
		spin := ""
		if n.spinner != nil {
			spin = n.spinner.View() + " "
		}
		status = spin + s.Accent.Render(IconPlaying+" playing")
	}
	lines = append(lines,
		fmt.Sprintf("%s  %s", status, s.Muted.Render(FormatProgress(n.playback.Progress))),
		fmt.Sprintf("vol %s %3.0f%%", VolumeBar(n.playback.Volume, 10), n.playback.Volume*100),
	)

	if !n.degradation.HideEffects {
		effects := "none"
		if len(n.playback.ActiveEffects) > 0 {
			effects = strings.Join(n.playback.ActiveEffects, ", ")
		}
		lines = append(lines, "",
			s.Muted.Render(wordwrap.String(fmt.Sprintf("effects (%3.0f%%): %s", n.playback.EffectsVolume*100, effects), inner)))
	}
	if n.playback.ThemeName != "" {
		lines = append(lines, s.Muted.Render("theme: "+n.playback.ThemeName))
	}

	pane := s.Pane.Width(max(n.width-2, 0)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(n.width, n.height, lipgloss.Left, lipgloss.Top, pane)
}
