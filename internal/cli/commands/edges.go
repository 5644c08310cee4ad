package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/spf13/cobra"
)

// NewEdgesCommand creates the edges command.
func NewEdgesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List relations between artifacts",
		Long: `List every directed relation in the lineage graph with its transformation
label. One relation per (source, target) pair; a pair mapped twice keeps the
label of the later row.`,
		Example: `  # List all relations
  leaplineage edges

  # List relations as JSON
  leaplineage edges --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdges(cmd)
		},
	}

	return cmd
}

func runEdges(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g, _, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	edges := g.Edges()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return edgesJSON(edges, r)
	case output.ModeMarkdown:
		return edgesMarkdown(edges, r)
	default:
		return edgesText(edges, r)
	}
}

// edgesText outputs relations as a styled table.
func edgesText(edges []lineage.Edge, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("Relations (%d total)", len(edges)))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Target", "Transformation"})

	for _, e := range edges {
		t.AppendRow(table.Row{e.Source, e.Target, e.Label})
	}

	t.Render()
	return nil
}

// edgesMarkdown outputs relations in markdown format.
func edgesMarkdown(edges []lineage.Edge, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Relations (%d total)", len(edges))))
	r.Println("")

	for _, e := range edges {
		if e.Label != "" {
			r.Printf("- %s -> %s (%s)\n", e.Source, e.Target, e.Label)
		} else {
			r.Printf("- %s -> %s\n", e.Source, e.Target)
		}
	}

	return nil
}

// edgesJSON outputs relations in JSON format.
func edgesJSON(edges []lineage.Edge, r *output.Renderer) error {
	edgesOutput := output.EdgesOutput{
		Total: len(edges),
		Edges: make([]output.EdgeInfo, 0, len(edges)),
	}

	for _, e := range edges {
		edgesOutput.Edges = append(edgesOutput.Edges, output.EdgeInfo{
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
		})
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(edgesOutput)
}
