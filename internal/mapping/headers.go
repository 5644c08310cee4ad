package mapping

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonical column names. Mapping files written by different teams use
// Portuguese or English headers interchangeably; both resolve here.
const (
	colFinalTable     = "final_table"
	colDataFrame      = "dataframe"
	colOrigins        = "origins"
	colTransformation = "transformation"
)

// canonicalColumns is the full schema in declaration order, used to report
// which columns a header was missing.
var canonicalColumns = []string{colFinalTable, colDataFrame, colOrigins, colTransformation}

// headerAliases maps normalized header names to canonical columns. Keys are
// the output of normalizeHeader: lowercased, diacritics and separator
// characters stripped.
var headerAliases = map[string]string{
	"tabelafinal": colFinalTable,
	"finaltable":  colFinalTable,

	"dataframe": colDataFrame,
	"df":        colDataFrame,

	"origem":  colOrigins,
	"origin":  colOrigins,
	"origins": colOrigins,
	"source":  colOrigins,

	"transformacao":  colTransformation,
	"transformation": colTransformation,
	"transform":      colTransformation,
}

// resolveHeaders maps each canonical column to its index in the header row.
// The first matching header wins; unrecognized headers are ignored. The
// second return value lists canonical columns absent from the header.
func resolveHeaders(headers []string) (map[string]int, []string) {
	cols := make(map[string]int, len(canonicalColumns))
	for i, h := range headers {
		canonical, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, exists := cols[canonical]; !exists {
			cols[canonical] = i
		}
	}

	var missing []string
	for _, name := range canonicalColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return cols, missing
}

// normalizeHeader lowercases a header and strips BOM artifacts, whitespace,
// underscores, hyphens, and diacritics, so "Transformação" and
// "final_table" both resolve through the alias table.
func normalizeHeader(header string) string {
	s := strings.TrimPrefix(header, "\uFEFF")
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// stripDiacritics removes accent marks by decomposing to NFD and dropping
// combining marks (unicode.Mn).
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
