// Package config loads todolist settings.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// file, and command-line flags (applied by the caller). The file is taken
// from --config, else TODOLIST_CONFIG, else
// $XDG_CONFIG_HOME/todolist/config.yaml if it exists.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/store/textstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	// AppName is the application directory name.
	AppName = "todolist"

	// FileName is the config file name inside the config directory.
	FileName = "config.yaml"

	// EnvVar names a config file when --config is not given.
	EnvVar = "TODOLIST_CONFIG"
)

// Config holds user settings.
type Config struct {
	// File is the task data file.
	File string `yaml:"file"`

	// Theme is one of ui.ThemeNames.
	Theme string `yaml:"theme"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Plain forces line mode even on a terminal.
	Plain bool `yaml:"plain"`

	// Group lists tasks grouped by pending/done.
	Group bool `yaml:"group"`

	// Path is where the config was read from; empty when defaults only.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File:     textstore.DefaultFileName,
		Theme:    ui.ThemeNames[0],
		LogLevel: "warn",
	}
}

// Load resolves the config file and merges it over the defaults.
// An explicitly named file must exist; the XDG default may be absent.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		explicit = false
		path = filepath.Join(DefaultConfigDir(), FileName)
	}

	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(b); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.File = expandHome(cfg.File)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("file must not be empty")
	}
	if !ui.ValidTheme(c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.ThemeNames, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
