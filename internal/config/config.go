// ABOUTME: Configuration for the notebook CLI and servers.
// ABOUTME: Reads YAML from the XDG config dir with NOTEBOOK_ env overrides.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBackend  = "badger"
	DefaultLogLevel = "warn"
	DefaultAddr     = "127.0.0.1:7878"
	EnvPrefix       = "NOTEBOOK"
)

type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Config holds notebook settings.
type Config struct {
	// Backend names the storage backend: badger, sqlite or memory.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// DataPath overrides the backend's default location.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// Editor is used for note bodies when no form is shown.
	Editor string `mapstructure:"editor" yaml:"editor"`

	LogLevel string      `mapstructure:"log_level" yaml:"log_level"`
	Serve    ServeConfig `mapstructure:"serve" yaml:"serve"`
}

// Dir returns $XDG_CONFIG_HOME/notebook, or ~/.config/notebook.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notebook")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file is not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("data_path", "")
	v.SetDefault("editor", defaultEditor())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("serve.addr", DefaultAddr)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}
