package config

import (
	"os"
)

// IsFirstRun checks if this is the first time running tabhome.
// Returns true if no global config file exists.
func IsFirstRun() bool {
	return isFirstRunAt(GlobalConfigPath())
}

func isFirstRunAt(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// EnsureGlobalConfig writes a default config file on first run so users have
// something to edit.
func EnsureGlobalConfig() error {
	if !IsFirstRun() {
		return nil
	}
	cfg := NewConfig()
	cfg.Home.BundleLimit = DefaultBundleLimit
	return Save(cfg)
}
