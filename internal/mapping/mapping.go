// Package mapping parses row-oriented lineage mapping files into normalized
// records. Headers are matched case- and diacritic-insensitively, multi-valued
// origin fields are split, and partial schemas are tolerated.
package mapping

import "strings"

// DefaultPlaceholders are the tokens that mean "no value" in a mapping cell.
var DefaultPlaceholders = []string{"-", "—"}

// Record is one normalized row of lineage description.
type Record struct {
	// FinalTable is the published artifact this row contributes to; empty for
	// intermediate-only rows
	FinalTable string
	// DataFrame is the intermediate artifact produced by this row
	DataFrame string
	// Origins are the upstream artifacts read by this row's transformation,
	// in field order
	Origins []string
	// Transformation is free-text; may be empty or a placeholder token
	Transformation string
}

// ParseWarning reports a non-fatal issue found while parsing a mapping row.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result holds the parsed records alongside any warnings and the canonical
// columns that were absent from the header.
type Result struct {
	Records  []Record       `json:"records"`
	Warnings []ParseWarning `json:"warnings"`
	Missing  []string       `json:"missing,omitempty"`
}

// IsPlaceholder reports whether a trimmed token is one of the "no value"
// placeholders.
func IsPlaceholder(token string, placeholders []string) bool {
	if len(placeholders) == 0 {
		placeholders = DefaultPlaceholders
	}
	for _, p := range placeholders {
		if token == p {
			return true
		}
	}
	return false
}

// SplitOrigins splits a comma-delimited origin field into trimmed artifact
// names, discarding blanks and placeholder tokens. Order is preserved.
func SplitOrigins(field string, placeholders []string) []string {
	var origins []string
	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part == "" || IsPlaceholder(part, placeholders) {
			continue
		}
		origins = append(origins, part)
	}
	return origins
}
