package selector

import (
	"path/filepath"
	"strings"
)

// Path is an optional filesystem path. The zero value means "nothing
// selected".
type Path struct {
	value string
	set   bool
}

// None returns the empty Path.
func None() Path {
	return Path{}
}

// Some returns a Path holding p in cleaned form. An empty p yields None.
func Some(p string) Path {
	if p == "" {
		return Path{}
	}
	return Path{value: filepath.Clean(p), set: true}
}

// Get returns the path and whether one is set.
func (p Path) Get() (string, bool) {
	return p.value, p.set
}

// IsSet reports whether a path is held.
func (p Path) IsSet() bool {
	return p.set
}

// String renders the path for a label; None renders as "".
func (p Path) String() string {
	return p.value
}

// Equal compares two paths by value.
func (p Path) Equal(other Path) bool {
	return p.set == other.set && p.value == other.value
}

// Dir returns the directory a picker should start in: the path itself for
// directory selectors, its parent for file selectors.
func (p Path) Dir(kind Kind) string {
	if !p.set {
		return ""
	}
	if kind == KindDirectory {
		return p.value
	}
	return filepath.Dir(p.value)
}

// ExtensionFilter lists the suffixes a file picker shows, e.g. ".htm".
// A nil or empty filter matches every file. It is never enforced on paths
// assigned programmatically.
type ExtensionFilter []string

// Pattern renders the filter as "*ext1 *ext2", or "*.*" when empty.
func (f ExtensionFilter) Pattern() string {
	if len(f) == 0 {
		return "*.*"
	}
	parts := make([]string, len(f))
	for i, ext := range f {
		parts[i] = "*" + ext
	}
	return strings.Join(parts, " ")
}
