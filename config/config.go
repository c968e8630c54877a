package config

import (
	"encoding/json"
	"fmt"
	"lofi/log"
	"os"
	"path/filepath"
	"time"
)

const (
	ConfigFileName = "config.json"

	// HomeEnv overrides the configuration directory.
	HomeEnv = "LOFI_HOME"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".lofi"), nil
}

// Config represents the application configuration
type Config struct {
	// CatalogPath points at a YAML file replacing the built-in channel catalog.
	// Empty means use the built-in catalog.
	CatalogPath string `json:"catalog_path"`
	// DefaultVolume is the master volume used until the user changes it.
	DefaultVolume float64 `json:"default_volume"`
	// DefaultTheme is the theme used until the user picks one.
	DefaultTheme string `json:"default_theme"`
	// VolumeStep is how much one volume key press changes the volume.
	VolumeStep float64 `json:"volume_step"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:   "",
		DefaultVolume: DefaultVolume,
		DefaultTheme:  DefaultTheme,
		VolumeStep:    0.05,
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	if c.DefaultVolume < 0 || c.DefaultVolume > 1 {
		return fmt.Errorf("default_volume must be between 0 and 1, got %v", c.DefaultVolume)
	}
	if c.VolumeStep <= 0 || c.VolumeStep > 1 {
		return fmt.Errorf("volume_step must be in (0, 1], got %v", c.VolumeStep)
	}
	return nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Start from defaults so keys missing from the file keep their default.
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		log.WarningLog.Printf("invalid config at %s, using defaults: %v", configPath, err)
		return DefaultConfig()
	}

	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
