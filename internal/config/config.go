package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// BaseURL is the root URL of the Copay administration backend.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PageSize is the default number of rows requested per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// DownloadDir is where CSV exports are written. Defaults to the
	// user's Downloads directory.
	DownloadDir string `mapstructure:"download_dir" yaml:"download_dir"`

	// LogFile is the path of the diagnostic log.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// DefaultConfigPath returns the default configuration file path,
// located at ~/.config/copay-admin/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "copay-admin", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		BaseURL:     "http://localhost:3000",
		PageSize:    20,
		DownloadDir: filepath.Join(home, "Downloads"),
		LogFile:     filepath.Join(home, ".config", "copay-admin", "copay-admin.log"),
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultConfig()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("download_dir", defaults.DownloadDir)
	v.SetDefault("log_file", defaults.LogFile)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := *defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}

	return &cfg, nil
}
