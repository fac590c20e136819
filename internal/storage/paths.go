// Package storage persists engine preferences and match records in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

const appName = "minichess"

// DatabaseDir returns the BadgerDB directory, creating it if needed:
// <data home>/minichess/db.
func DatabaseDir() (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, appName, "db")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	return dir, nil
}

// dataHome is Application Support on macOS, %AppData% on Windows and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin", "windows":
		dir, err := os.UserConfigDir()
		return dir, errors.Wrap(err, "user config directory")
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "home directory")
	}
	return filepath.Join(home, ".local", "share"), nil
}
