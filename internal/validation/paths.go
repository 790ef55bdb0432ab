// Package validation checks user supplied paths before the tool writes to
// them.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotDirectory is returned when an output location exists but is a file.
var ErrNotDirectory = errors.New("not a directory")

// ValidateFilename validates a bare file name (no directories). Export file
// names are built from user input, so separators, ".." and NUL bytes are
// rejected.
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("filename contains null byte: %q", filename)
	}
	if strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("filename cannot contain path separators: %s", filename)
	}
	if filename == "." || filename == ".." {
		return fmt.Errorf("filename cannot be %q", filename)
	}
	return nil
}

// ValidateOutputDir checks that dir exists and is a directory.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s: %w", dir, ErrNotDirectory)
	}
	return nil
}
