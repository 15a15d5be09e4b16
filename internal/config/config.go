// Package config provides configuration loading for Warden.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (WARDEN_*) > config file (~/.warden.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all Warden configuration options.
type Config struct {
	OutputFormat  string        `mapstructure:"output_format" yaml:"output_format"`
	Workers       int           `mapstructure:"workers" yaml:"workers"`
	ScanTimeout   time.Duration `mapstructure:"scan_timeout" yaml:"scan_timeout"`
	MaxFileSize   int64         `mapstructure:"max_file_size" yaml:"max_file_size"`
	ExcludedDirs  []string      `mapstructure:"excluded_dirs" yaml:"excluded_dirs"`
	ExcludedFiles []string      `mapstructure:"excluded_files" yaml:"excluded_files"`
	Languages     []string      `mapstructure:"languages" yaml:"languages"`
	ListenAddr    string        `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat: "table",
		Workers:      4,
		ScanTimeout:  300 * time.Second,
		MaxFileSize:  10 * 1024 * 1024,
		ListenAddr:   ":8080",
	}
}

// Load reads configuration from ~/.warden.yaml and environment variables.
// It does NOT apply CLI flag overrides — call ApplyFlags for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".warden")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("workers") {
		val, _ := flags.GetInt("workers")
		cfg.Workers = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.ScanTimeout = val
	}
	if flags.Changed("max-file-size") {
		val, _ := flags.GetInt64("max-file-size")
		cfg.MaxFileSize = val
	}
	if flags.Changed("exclude-dir") {
		val, _ := flags.GetStringSlice("exclude-dir")
		cfg.ExcludedDirs = val
	}
	if flags.Changed("language") {
		val, _ := flags.GetStringSlice("language")
		cfg.Languages = val
	}
	if flags.Changed("addr") {
		val, _ := flags.GetString("addr")
		cfg.ListenAddr = val
	}
}

// ConfigFilePath returns the default config file path (~/.warden.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".warden.yaml"
	}
	return filepath.Join(home, ".warden.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "table")
	v.SetDefault("workers", 4)
	v.SetDefault("scan_timeout", 300*time.Second)
	v.SetDefault("max_file_size", 10*1024*1024)
	v.SetDefault("listen_addr", ":8080")
}
