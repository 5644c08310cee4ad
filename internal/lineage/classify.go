package lineage

import "strings"

// Naming conventions recognized by the classifier. These mirror the
// conventions of the pipelines whose mappings this tool visualizes.
const (
	dataframeSuffix = "_df"
	dataframePrefix = "df_"
	factKeyword     = "fato"
	viewKeyword     = "vw_"
	dataDirPrefix   = "data/"
)

var flatFileExtensions = []string{".csv", ".parquet"}

// classifierRule pairs a predicate with the type it assigns.
type classifierRule struct {
	matches func(name, finalTable string) bool
	typ     NodeType
}

// classifierRules is evaluated in order; the first match wins. Order matters:
// a name that is both path-like and dotted resolves to the earlier rule.
var classifierRules = []classifierRule{
	{
		// The row's designated final artifact.
		matches: func(name, finalTable string) bool {
			return finalTable != "" && name == finalTable
		},
		typ: TypeFinalTable,
	},
	{
		// Dataframe naming conventions, including fact and view artifacts.
		matches: func(name, _ string) bool {
			return strings.HasSuffix(name, dataframeSuffix) ||
				strings.HasPrefix(name, dataframePrefix) ||
				strings.Contains(name, factKeyword) ||
				strings.Contains(name, viewKeyword)
		},
		typ: TypeDataFrame,
	},
	{
		// Path-like names are flat files.
		matches: func(name, _ string) bool {
			if strings.Contains(name, "/") || strings.HasPrefix(name, dataDirPrefix) {
				return true
			}
			for _, ext := range flatFileExtensions {
				if strings.HasSuffix(name, ext) {
					return true
				}
			}
			return false
		},
		typ: TypeFile,
	},
	{
		// Schema-qualified names (schema.table).
		matches: func(name, _ string) bool {
			return strings.Contains(name, ".")
		},
		typ: TypeTable,
	},
}

// Classify maps an artifact name to a semantic type given the row's final
// table. It is pure and deterministic. Classification is advisory (it drives
// visual styling only), so unknown names fall back to TypeDataFrame.
func Classify(name, finalTable string) NodeType {
	for _, rule := range classifierRules {
		if rule.matches(name, finalTable) {
			return rule.typ
		}
	}
	return TypeDataFrame
}
