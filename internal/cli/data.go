package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/dataset"
	"github.com/roach88/schoolstats/internal/store"
	"github.com/roach88/schoolstats/internal/workbook"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeLoadFailed  = "E004" // Table failed schema validation
	ErrCodeShape       = "E006" // Year data cannot be reshaped
	ErrCodeWriteFailed = "E007" // Snapshot write error
	ErrCodeNoSnapshot  = "E008" // SQLite file holds no snapshot
	ErrCodeInput       = "E010" // Input closed before a school was chosen
)

// isWorkbook reports whether path names an Excel workbook.
func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// loadTable returns the table selected by --data or --db, or the embedded
// table. source names where it came from for logs and messages.
func loadTable(ctx context.Context, opts *RootOptions) (tbl *datafile.Table, source string, err error) {
	switch {
	case opts.DB != "":
		source = opts.DB
		if _, statErr := os.Stat(opts.DB); os.IsNotExist(statErr) {
			return nil, source, &CodedError{Code: ErrCodeNotFound, Err: fmt.Errorf("database not found: %s", opts.DB)}
		}
		st, openErr := store.Open(opts.DB)
		if openErr != nil {
			return nil, source, &CodedError{Code: ErrCodeGeneric, Err: openErr}
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		tbl, err = st.LoadTable(ctx)
	case opts.Data != "":
		source = opts.Data
		if _, statErr := os.Stat(opts.Data); os.IsNotExist(statErr) {
			return nil, source, &CodedError{Code: ErrCodeNotFound, Err: fmt.Errorf("table file not found: %s", opts.Data)}
		}
		if isWorkbook(opts.Data) {
			tbl, err = workbook.Read(opts.Data)
		} else {
			tbl, err = datafile.Load(opts.Data)
		}
	default:
		source = "embedded:" + datafile.DefaultName
		tbl, err = datafile.Default()
	}
	if err != nil {
		return nil, source, classifyLoadError(err)
	}
	slog.Debug("table loaded", "source", source, "first_year", tbl.FirstYear)
	return tbl, source, nil
}

// CodedError attaches a CLI error code to a load failure.
type CodedError struct {
	Code string
	Err  error
}

func (e *CodedError) Error() string { return fmt.Sprintf("%s: %v", e.Code, e.Err) }

func (e *CodedError) Unwrap() error { return e.Err }

func classifyLoadError(err error) *CodedError {
	var shapeErr *dataset.ShapeError
	var loadErr *datafile.LoadError
	switch {
	case errors.As(err, &shapeErr):
		return &CodedError{Code: ErrCodeShape, Err: err}
	case errors.As(err, &loadErr):
		return &CodedError{Code: ErrCodeLoadFailed, Err: err}
	case errors.Is(err, store.ErrNoSnapshot):
		return &CodedError{Code: ErrCodeNoSnapshot, Err: err}
	default:
		return &CodedError{Code: ErrCodeGeneric, Err: err}
	}
}

// errorCode extracts the CLI error code from err.
func errorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeGeneric
}
