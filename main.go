package main

import (
	"context"
	"encoding/json"
	"fmt"
	"lofi/app"
	"lofi/catalog"
	"lofi/config"
	"lofi/log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var version = "0.4.0"

// env is what every command works on.
type env struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	appState *config.State
}

// loadEnv reads the config, the channel catalog and the persisted state.
func loadEnv() (*env, error) {
	cfg := config.LoadConfig()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = c
	}

	appState := config.LoadState()
	if appState.GetLastModTime().IsZero() {
		// First run: the configured defaults seed the state.
		appState.Volume = cfg.DefaultVolume
		appState.Theme = cfg.DefaultTheme
	}
	return &env{cfg: cfg, catalog: cat, appState: appState}, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lofi",
		Short:         "lofi - a terminal player for lofi radio channels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return app.Run(context.Background(), e.cfg, e.catalog, e.appState)
		},
	}

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(e.cfg, "", "  ")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Fprintf(out, "State: %s\n", e.appState.Path())
			fmt.Fprintf(out, "Log: %s\n", log.FileName())
			fmt.Fprintf(out, "Catalog: %d channels\n", e.catalog.Len())
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lofi",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lofi version %s\n", version)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default channels, effects and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if err := e.appState.Reset(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "State has been reset to defaults")
			return nil
		},
	}

	rootCmd.AddCommand(debugCmd, versionCmd, resetCmd)
	rootCmd.AddCommand(channelCommands()...)
	rootCmd.AddCommand(newEffectsCmd(), newThemeCmd(), newVolumeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
