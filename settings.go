package main

import (
	"fmt"
	"lofi/effects"
	"lofi/player"
	"lofi/ui"
	"strconv"

	"github.com/spf13/cobra"
)

func parseVolume(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("volume must be a number between 0 and 1, got %q", arg)
	}
	return v, nil
}

func openMixer() (*effects.Mixer, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	return effects.NewMixer(e.appState), nil
}

func newEffectsCmd() *cobra.Command {
	effectsCmd := &cobra.Command{
		Use:   "effects",
		Short: "Manage ambient sound effects",
	}

	effectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sound effects with their own and effective volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMixer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range m.All() {
				kind := "builtin"
				if e.Custom {
					kind = "custom"
				}
				fmt.Fprintf(out, "%s\t%s\t%.2f\t%.2f\t%s\n", e.ID, e.Name, m.Volume(e.ID), m.EffectiveVolume(e.ID), kind)
			}
			fmt.Fprintf(out, "master\t%.2f\n", m.MasterVolume())
			return nil
		},
	})

	effectsCmd.AddCommand(&cobra.Command{
		Use:   "add NAME URL",
		Short: "Add a custom effect from a YouTube link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMixer()
			if err != nil {
				return err
			}
			e, err := m.Add(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s\n", e.Name, e.ID)
			return nil
		},
	})

	effectsCmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a custom effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMixer()
			if err != nil {
				return err
			}
			return m.Delete(args[0])
		},
	})

	effectsCmd.AddCommand(&cobra.Command{
		Use:   "volume ID|master VOLUME",
		Short: "Set the volume of one effect or of all effects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVolume(args[1])
			if err != nil {
				return err
			}
			m, err := openMixer()
			if err != nil {
				return err
			}
			if args[0] == "master" {
				return m.SetMasterVolume(v)
			}
			return m.SetVolume(args[0], v)
		},
	})

	return effectsCmd
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [THEME]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: ui.ThemeIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			p := player.New(e.appState, e.cfg.VolumeStep)
			if len(args) == 1 {
				if err := p.SetTheme(args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Theme().ID)
			return nil
		},
	}
}

func newVolumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volume [VOLUME]",
		Short: "Show or set the master volume (0 to 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			p := player.New(e.appState, e.cfg.VolumeStep)
			if len(args) == 1 {
				v, err := parseVolume(args[0])
				if err != nil {
					return err
				}
				if err := p.SetVolume(v); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", p.Volume())
			return nil
		},
	}
}
