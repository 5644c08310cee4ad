package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artifacts in the lineage graph",
		Long: `List every artifact found in the mapping with its classified type and
degree counts.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all artifacts (auto-detect output format)
  leaplineage list

  # Only show final tables
  leaplineage list --type final_table

  # List artifacts as JSON
  leaplineage list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, typeFilter)
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter by artifact type (file|table|dataframe|final_table)")
	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"file", "table", "dataframe", "final_table"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, typeFilter string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if typeFilter != "" && !validArtifactType(typeFilter) {
		return fmt.Errorf("unknown artifact type: %s", typeFilter)
	}

	g, _, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	nodes := g.Nodes()
	if typeFilter != "" {
		var filtered []*lineage.Node
		for _, n := range nodes {
			if string(n.Type) == typeFilter {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(g, nodes, r)
	case output.ModeMarkdown:
		return listMarkdown(g, nodes, r)
	default:
		return listText(g, nodes, r)
	}
}

// listText outputs artifacts as a styled table.
func listText(g *lineage.Graph, nodes []*lineage.Node, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("Artifacts (%d total)", len(nodes)))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Artifact", "Type", "In", "Out"})

	for _, n := range nodes {
		name := n.ID
		if g.InDegree(n.ID) == 0 && g.OutDegree(n.ID) == 0 {
			name += " (isolated)"
		}
		t.AppendRow(table.Row{name, string(n.Type), g.InDegree(n.ID), g.OutDegree(n.ID)})
	}

	t.Render()
	return nil
}

// listMarkdown outputs artifacts in markdown format.
func listMarkdown(g *lineage.Graph, nodes []*lineage.Node, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Artifacts (%d total)", len(nodes))))
	r.Println("")

	for _, n := range nodes {
		r.Println(output.FormatHeader(2, n.ID))
		r.Println(output.FormatKeyValue("Type", string(n.Type)))
		r.Println(output.FormatKeyValue("In", fmt.Sprintf("%d", g.InDegree(n.ID))))
		r.Println(output.FormatKeyValue("Out", fmt.Sprintf("%d", g.OutDegree(n.ID))))

		if origins := g.GetOrigins(n.ID); len(origins) > 0 {
			r.Println(output.FormatKeyValue("Origins", strings.Join(origins, ", ")))
		}
		if consumers := g.GetConsumers(n.ID); len(consumers) > 0 {
			r.Println(output.FormatKeyValue("Consumers", strings.Join(consumers, ", ")))
		}

		r.Println("")
	}

	return nil
}

// listJSON outputs artifacts in JSON format.
func listJSON(g *lineage.Graph, nodes []*lineage.Node, r *output.Renderer) error {
	listOutput := output.ListOutput{
		Summary: output.ListSummary{
			Total:  len(nodes),
			ByType: make(map[string]int),
		},
		Artifacts: make([]output.ArtifactInfo, 0, len(nodes)),
	}

	for _, n := range nodes {
		in, out := g.InDegree(n.ID), g.OutDegree(n.ID)
		listOutput.Summary.ByType[string(n.Type)]++
		listOutput.Artifacts = append(listOutput.Artifacts, output.ArtifactInfo{
			Name:      n.ID,
			Type:      string(n.Type),
			InDegree:  in,
			OutDegree: out,
			Isolated:  in == 0 && out == 0,
		})
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput)
}

func validArtifactType(s string) bool {
	switch lineage.NodeType(s) {
	case lineage.TypeFile, lineage.TypeTable, lineage.TypeDataFrame, lineage.TypeFinalTable:
		return true
	}
	return false
}
