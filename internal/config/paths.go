package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the termkit config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/termkit; on macOS
// to ~/Library/Application Support/termkit; and on Windows to %AppData%/termkit.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "termkit"), nil
}

// ScriptsDir returns the directory replay scripts are resolved against
// when given by bare name.
func ScriptsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "scripts"), nil
}

// ResolveScript expands a script argument: a path that exists (or contains
// a separator) is used as-is, otherwise the name is looked up under
// ScriptsDir, with a .yaml suffix added when missing.
func ResolveScript(arg string) (string, error) {
	if strings.ContainsRune(arg, os.PathSeparator) {
		return arg, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	dir, err := ScriptsDir()
	if err != nil {
		return "", err
	}
	name := arg
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return arg, nil
}
