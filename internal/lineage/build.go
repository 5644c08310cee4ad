package lineage

import (
	"github.com/leapstack-labs/leaplineage/internal/mapping"
)

// BuildOptions configures the fold. The zero value is usable.
type BuildOptions struct {
	// Placeholders are the "no value" tokens; a transformation equal to one
	// of them yields an empty edge label. Defaults to mapping.DefaultPlaceholders.
	Placeholders []string
}

// Build folds a sequence of mapping records into a new graph. The same input
// sequence always yields the same node and edge sets.
func Build(records []mapping.Record, opts BuildOptions) *Graph {
	g := NewGraph()
	for _, rec := range records {
		g.Fold(rec, opts)
	}
	return g
}

// Fold applies one mapping record to the graph:
//
//  1. Each origin becomes a node (classified on first reference) with an edge
//     origin -> dataframe. When the record names no dataframe the target
//     defaults to the origin itself, which the self-loop rule then skips.
//  2. The dataframe becomes a node if the record names one.
//  3. A final table distinct from the dataframe is promoted to a final-table
//     node with an edge dataframe -> final table. A record naming only a
//     final table still creates that node, isolated.
func (g *Graph) Fold(rec mapping.Record, opts BuildOptions) {
	label := edgeLabel(rec.Transformation, opts.Placeholders)

	for _, origin := range rec.Origins {
		g.AddNode(origin, Classify(origin, rec.FinalTable))
		target := rec.DataFrame
		if target == "" {
			target = origin
		} else {
			g.AddNode(target, Classify(target, rec.FinalTable))
		}
		_ = g.SetEdge(origin, target, label)
	}

	if rec.DataFrame != "" {
		g.AddNode(rec.DataFrame, Classify(rec.DataFrame, rec.FinalTable))
	}

	if rec.FinalTable != "" {
		switch {
		case rec.DataFrame == "" && len(rec.Origins) == 0:
			// Terminal artifacts may be listed before their lineage is known.
			g.PromoteFinal(rec.FinalTable)
		case rec.DataFrame != "" && rec.FinalTable != rec.DataFrame:
			g.PromoteFinal(rec.FinalTable)
			_ = g.SetEdge(rec.DataFrame, rec.FinalTable, label)
		}
	}
}

// edgeLabel maps a transformation to an edge label: placeholder tokens and
// empty text both mean "unlabeled".
func edgeLabel(transformation string, placeholders []string) string {
	if transformation == "" || mapping.IsPlaceholder(transformation, placeholders) {
		return ""
	}
	return transformation
}
