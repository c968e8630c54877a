// Package player holds the playback settings around the channel registry:
// master volume, theme and the transient play/pause state.
package player

import (
	"fmt"
	"lofi/config"
	"lofi/ui"
)

// MuteRestoreVolume is what unmuting a silent player goes back to.
const MuteRestoreVolume = 0.5

// Player applies setting changes and persists them through config.Settings.
type Player struct {
	settings config.Settings
	step     float64
	playing  bool
}

// New creates a player. step is how much one volume key press changes the volume.
func New(settings config.Settings, step float64) *Player {
	if step <= 0 {
		step = config.DefaultConfig().VolumeStep
	}
	return &Player{settings: settings, step: step}
}

func (p *Player) Volume() float64 {
	return clamp(p.settings.GetVolume())
}

// SetVolume clamps v to [0, 1] and saves it.
func (p *Player) SetVolume(v float64) error {
	if err := p.settings.SetVolume(clamp(v)); err != nil {
		return fmt.Errorf("failed to save volume: %w", err)
	}
	return nil
}

// AdjustVolume changes the volume by steps volume steps.
func (p *Player) AdjustVolume(steps int) error {
	return p.SetVolume(p.Volume() + float64(steps)*p.step)
}

// ToggleMute silences the player, or restores MuteRestoreVolume when silent.
func (p *Player) ToggleMute() error {
	if p.Volume() == 0 {
		return p.SetVolume(MuteRestoreVolume)
	}
	return p.SetVolume(0)
}

// Theme returns the current theme, the default one if the stored id is unknown.
func (p *Player) Theme() ui.Theme {
	if t, ok := ui.LookupTheme(p.settings.GetTheme()); ok {
		return t
	}
	return ui.Themes[0]
}

// SetTheme validates and saves the theme id.
func (p *Player) SetTheme(id string) error {
	if err := ui.ValidateTheme(id); err != nil {
		return err
	}
	if err := p.settings.SetTheme(id); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// CycleTheme switches to the next theme and returns it.
func (p *Player) CycleTheme() (ui.Theme, error) {
	next := ui.NextThemeID(p.Theme().ID)
	if err := p.SetTheme(next); err != nil {
		return p.Theme(), err
	}
	return p.Theme(), nil
}

func (p *Player) Playing() bool {
	return p.playing
}

// SetPlaying starts or pauses playback.
func (p *Player) SetPlaying(playing bool) {
	p.playing = playing
}

// TogglePlay flips play/pause and returns the new state.
func (p *Player) TogglePlay() bool {
	p.playing = !p.playing
	return p.playing
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
