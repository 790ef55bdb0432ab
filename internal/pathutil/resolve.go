// Package pathutil normalizes user supplied paths the same way for the GUI
// selectors, the CLI flags and the configuration defaults.
package pathutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var windowsVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// ExpandWindowsVars expands %NAME% references. Unknown variables are left as
// written so the resulting path still shows what was asked for.
func ExpandWindowsVars(path string) string {
	return windowsVar.ReplaceAllStringFunc(path, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return m
	})
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home + path[1:], nil
}

// Normalize expands ~ and %VAR% references and cleans the result. Symlinks
// are not resolved. The empty string stays empty.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := ExpandHome(ExpandWindowsVars(path))
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
