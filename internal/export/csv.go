// Package export writes the displayed result forest as CSV.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
	"github.com/dbtoolbox/dbtoolbox/internal/validation"
)

// DefaultName is the file name used when exporting into a directory.
const DefaultName = "time_bins.csv"

// maxSuffix bounds the search for a free file name.
const maxSuffix = 999

var (
	// ErrEmpty is returned when the forest has no groups.
	ErrEmpty = errors.New("nothing to export")

	// ErrNoFreeName is returned when every candidate name is taken.
	ErrNoFreeName = errors.New("no free file name")
)

// Result describes a finished export.
type Result struct {
	Path string
	Rows int
}

// Header returns the CSV header for a forest with the given column count.
func Header(columns int) []string {
	header := make([]string, 0, columns+1)
	header = append(header, "Group")
	for i := 1; i <= columns; i++ {
		header = append(header, "Column "+strconv.Itoa(i))
	}
	return header
}

// WriteCSV writes f to w, one record per row node prefixed with its group
// label. Empty groups produce a single record holding only the label.
// Records are padded to the forest's column count.
func WriteCSV(w io.Writer, f resulttree.Forest) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(f.Columns)); err != nil {
		return 0, err
	}

	rows := 0
	record := make([]string, f.Columns+1)
	for _, g := range f.Groups {
		if len(g.Children) == 0 {
			clear(record)
			record[0] = g.Label
			if err := cw.Write(record); err != nil {
				return rows, err
			}
			continue
		}
		for _, row := range g.Children {
			clear(record)
			record[0] = g.Label
			copy(record[1:], row.Cells)
			if err := cw.Write(record); err != nil {
				return rows, err
			}
			rows++
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

// ToDir writes f into dir under name, choosing name_1.csv, name_2.csv, ...
// when the name is taken. Existing files are never overwritten.
func ToDir(ctx context.Context, dir, name string, f resulttree.Forest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if f.Len() == 0 {
		return Result{}, ErrEmpty
	}
	if name == "" {
		name = DefaultName
	}
	if err := validation.ValidateFilename(name); err != nil {
		return Result{}, err
	}
	if err := validation.ValidateOutputDir(dir); err != nil {
		return Result{}, err
	}

	file, err := createUnique(dir, name)
	if err != nil {
		return Result{}, err
	}
	return write(file, f)
}

// ToFile writes f to path, replacing any existing file.
func ToFile(ctx context.Context, path string, f resulttree.Forest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if f.Len() == 0 {
		return Result{}, ErrEmpty
	}
	if err := validation.ValidateOutputDir(filepath.Dir(path)); err != nil {
		return Result{}, err
	}

	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create export file: %w", err)
	}
	return write(file, f)
}

func write(file *os.File, f resulttree.Forest) (Result, error) {
	rows, err := WriteCSV(file, f)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(file.Name())
		return Result{}, fmt.Errorf("failed to write %s: %w", file.Name(), err)
	}
	return Result{Path: file.Name(), Rows: rows}, nil
}

// createUnique creates name in dir, inserting a numeric suffix before the
// extension on collision: "time_bins.csv" -> "time_bins_1.csv".
func createUnique(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	for i := 0; i <= maxSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		file, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create export file: %w", err)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", name, dir, ErrNoFreeName)
}
