package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL  string `toml:"api_base_url"`
	APIKey      string `toml:"api_key"`
	FallbackURL string `toml:"fallback_url"`
}

// Defaults used when the config file is created on first run.
const (
	DefaultAPIBaseURL  = "https://api.pokemontcg.io/v2"
	DefaultFallbackURL = "https://raw.githubusercontent.com/PokemonTCG/pokemon-tcg-data/master/cards/en/base1.json"
)

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "battlemancer", "config.toml")
}

// GetCacheDir returns the cache directory for rendered card art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "battlemancer")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	// Fill in endpoints an older or hand-edited file may have dropped.
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultAPIBaseURL
	}
	if config.FallbackURL == "" {
		config.FallbackURL = DefaultFallbackURL
	}

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	// Create default config
	config := &Config{
		APIBaseURL:  DefaultAPIBaseURL,
		FallbackURL: DefaultFallbackURL,
	}

	if err := writeConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// writeConfig encodes the config to the config file, replacing its contents
func writeConfig(config *Config) error {
	file, err := os.Create(GetConfigFilePath())
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// SetAPIKey sets the primary API key in the config
func SetAPIKey(key string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.APIKey = key

	return writeConfig(config)
}
