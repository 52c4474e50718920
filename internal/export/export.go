package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is an export file format
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported export format")

// FormatFor picks the format from the file extension
func FormatFor(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case CSV, JSON, XLSX, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ToFile writes r to path in the format given by its extension.
// Parent directories are created.
func ToFile(path string, r *Report, opt PDFOptions) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch format {
	case XLSX:
		return WriteXLSX(path, r)
	case PDF:
		return WritePDF(path, r, opt)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if format == CSV {
		err = WriteCSV(f, r.Rows)
	} else {
		err = WriteJSON(f, r)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
