// Package fs provides filesystem helpers for writing compiled themes.
package fs

import (
	"bytes"
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the directory searched for a user manifest.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/themec, or the system
// temp directory if home is unavailable.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "themec")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "themec")
	}
	return filepath.Join(home, ".config", "themec")
}

// WriteFile atomically replaces path with data, creating parent directories
// if needed. Files whose content already matches are left untouched; the
// result reports whether a write happened.
func WriteFile(path string, data []byte) (bool, error) {
	if same, err := sameContent(path, data); err != nil {
		return false, err
	} else if same {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}

func sameContent(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, data), nil
}
