package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the lineage graph",
		Long: `Print aggregate counts for the lineage graph: artifacts by type, relation
count, and the roots, leaves, and isolated artifacts.`,
		Example: `  # Summarize the graph
  leaplineage stats

  # Summary as JSON
  leaplineage stats --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd)
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g, _, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	stats := collectStats(g)

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	r.Header(1, "Lineage summary")
	r.KeyValue("Artifacts", fmt.Sprintf("%d", stats.Nodes))
	r.KeyValue("Relations", fmt.Sprintf("%d", stats.Edges))
	for _, typ := range []lineage.NodeType{lineage.TypeFile, lineage.TypeTable, lineage.TypeDataFrame, lineage.TypeFinalTable} {
		if n := stats.ByType[string(typ)]; n > 0 {
			r.KeyValue(string(typ), fmt.Sprintf("%d", n))
		}
	}
	if len(stats.Roots) > 0 {
		r.KeyValue("Roots", strings.Join(stats.Roots, ", "))
	}
	if len(stats.Leaves) > 0 {
		r.KeyValue("Leaves", strings.Join(stats.Leaves, ", "))
	}
	if len(stats.Isolated) > 0 {
		r.KeyValue("Isolated", strings.Join(stats.Isolated, ", "))
	}
	return nil
}

func collectStats(g *lineage.Graph) output.StatsOutput {
	stats := output.StatsOutput{
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		ByType:   make(map[string]int),
		Isolated: g.Isolated(),
		Roots:    g.GetRoots(),
		Leaves:   g.GetLeaves(),
	}
	for _, n := range g.Nodes() {
		stats.ByType[string(n.Type)]++
	}
	return stats
}
