package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures parsing. The zero value is usable.
type Options struct {
	// Placeholders overrides the "no value" tokens; defaults to
	// DefaultPlaceholders when empty
	Placeholders []string
	// Logger receives debug output; defaults to a discard logger
	Logger *slog.Logger
}

// ParseFile reads and parses a mapping CSV from disk. A missing or unreadable
// file is fatal and surfaced verbatim; row-level problems are recovered into
// warnings instead.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return result, nil
}

// Parse reads mapping rows from r. The first row is the header; recognized
// columns are resolved through the alias table and missing canonical columns
// default to empty values rather than failing.
func Parse(r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	placeholders := opts.Placeholders
	if len(placeholders) == 0 {
		placeholders = DefaultPlaceholders
	}

	reader := csv.NewReader(r)
	// Variable field counts are handled below with padding/truncation.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty mapping: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols, missing := resolveHeaders(headers)
	for _, name := range missing {
		logger.Debug("mapping column absent, defaulting to empty", "column", name)
	}

	headerCount := len(headers)
	result := &Result{Missing: missing}
	rowNum := 1 // header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				result.Warnings = append(result.Warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				result.Warnings = append(result.Warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		result.Records = append(result.Records, Record{
			FinalTable:     cellValue(row, cols, colFinalTable),
			DataFrame:      cellValue(row, cols, colDataFrame),
			Origins:        SplitOrigins(cellValue(row, cols, colOrigins), placeholders),
			Transformation: cellValue(row, cols, colTransformation),
		})
	}

	logger.Debug("parsed mapping",
		"records", len(result.Records),
		"warnings", len(result.Warnings))
	return result, nil
}

// cellValue returns the trimmed value of a canonical column in a row, or ""
// when the column was not present in the header.
func cellValue(row []string, cols map[string]int, canonical string) string {
	i, ok := cols[canonical]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[i])
}
