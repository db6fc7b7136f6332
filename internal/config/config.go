package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Backend identifies where the catalog is persisted.
type Backend string

const (
	// BackendLocal keeps the catalog in an embedded bolt database.
	BackendLocal Backend = "local"
	// BackendAPI stores through a cinelogd (or compatible) REST service.
	BackendAPI Backend = "api"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects and parameterizes the catalog backend.
type StorageConfig struct {
	Backend Backend `mapstructure:"backend"` // "local" or "api"
	Path    string  `mapstructure:"path"`    // bolt database file (local)
	APIURL  string  `mapstructure:"api_url"` // base URL (api)
}

// ServerConfig holds cinelogd settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// UIConfig holds TUI defaults.
type UIConfig struct {
	DefaultSort  string `mapstructure:"default_sort"`
	DefaultOrder string `mapstructure:"default_order"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendLocal,
			Path:    filepath.Join(defaultDataPath(), "cinelog.db"),
			APIURL:  "http://localhost:5000",
		},
		Server: ServerConfig{
			Port: 5000,
		},
		UI: UIConfig{
			DefaultSort:  "title",
			DefaultOrder: "asc",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinelog.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinelog")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinelog")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("CINELOG")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	viper.Set("storage.backend", cfg.Storage.Backend)
	viper.Set("storage.path", cfg.Storage.Path)
	viper.Set("storage.api_url", cfg.Storage.APIURL)
	viper.Set("server.port", cfg.Server.Port)
	viper.Set("ui.default_sort", cfg.UI.DefaultSort)
	viper.Set("ui.default_order", cfg.UI.DefaultOrder)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
