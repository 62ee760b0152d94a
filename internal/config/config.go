// Package config provides configuration management for tabhome.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	appName      = "tabhome"
	databaseName = "tabhome.db"
	debugLogName = "debug.log"

	// DefaultBundleLimit is how many archived bundles the home screen lists.
	DefaultBundleLimit = 25

	// DefaultTheme is the color theme used when none is configured.
	DefaultTheme = "default"
)

// Config is the top-level configuration structure.
type Config struct {
	Options *Options `json:"options,omitempty"`
	Home    *Home    `json:"home,omitempty"`
}

// Options holds optional configuration settings.
//
//nolint:govet // Field order is intentional for JSON readability.
type Options struct {
	DataDir string `json:"data_directory,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// Home holds home screen settings.
type Home struct {
	BundleLimit  int    `json:"bundle_limit,omitempty"`
	StartPrivate bool   `json:"start_private,omitempty"`
	Theme        string `json:"theme,omitempty"`
}

// NewConfig creates a new Config with initialized sections.
func NewConfig() *Config {
	return &Config{
		Options: &Options{},
		Home:    &Home{},
	}
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir(), databaseName)
}

// DebugLogPath returns the debug log location.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.DataDir(), debugLogName)
}

// BundleLimit returns how many archived bundles to list.
func (c *Config) BundleLimit() int {
	if c.Home != nil && c.Home.BundleLimit > 0 {
		return c.Home.BundleLimit
	}
	return DefaultBundleLimit
}

// StartPrivate reports whether the home screen opens in private mode.
func (c *Config) StartPrivate() bool {
	return c.Home != nil && c.Home.StartPrivate
}

// Theme returns the name of the color theme.
func (c *Config) Theme() string {
	if c.Home != nil && c.Home.Theme != "" {
		return c.Home.Theme
	}
	return DefaultTheme
}

// SetConfigField updates a single field in the global config file using JSON
// path notation.
func (c *Config) SetConfigField(key string, value any) error {
	return SetField(GlobalConfigPath(), key, value)
}

// SetField updates a single field in the config file at path.
// This uses sjson for surgical updates - only the specified field is modified.
func SetField(path, key string, value any) error {
	//nolint:gosec // G304: path is a trusted config location, not user input.
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading config file: %w", err)
		}
		data = []byte("{}")
	}

	newData, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	//nolint:gosec // 0o600 is intentionally restrictive for security.
	if err := os.WriteFile(path, newData, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetField reads a single field from the config file at path. The second
// result is false when the field is not set.
func GetField(path, key string) (string, bool, error) {
	//nolint:gosec // G304: path is a trusted config location, not user input.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading config file: %w", err)
	}

	result := gjson.GetBytes(data, key)
	if !result.Exists() {
		return "", false, nil
	}
	return result.String(), true, nil
}
