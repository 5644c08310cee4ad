package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/spf13/cobra"
)

// TraceOptions holds options for the trace command.
type TraceOptions struct {
	Upstream   bool
	Downstream bool
	Depth      int
}

// NewTraceCommand creates the trace command.
func NewTraceCommand() *cobra.Command {
	opts := &TraceOptions{}

	cmd := &cobra.Command{
		Use:   "trace <artifact>",
		Short: "Show lineage for an artifact",
		Long: `Display the upstream origins and downstream consumers of an artifact.

The trace shows how data flows into and out of the artifact, helping you
understand the blast radius of a change and debug data issues.`,
		Example: `  # Show full lineage for an artifact
  leaplineage trace fato_vendas_df

  # Show only upstream origins
  leaplineage trace fato_vendas_df --downstream=false

  # Limit traversal depth
  leaplineage trace fato_vendas_df --depth 2

  # Output as JSON
  leaplineage trace fato_vendas_df --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Upstream, "upstream", true, "Include upstream origins")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", true, "Include downstream consumers")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Max traversal depth (0 = unlimited)")

	return cmd
}

func runTrace(cmd *cobra.Command, artifact string, opts *TraceOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g, _, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	node, ok := g.GetNode(artifact)
	if !ok {
		return fmt.Errorf("artifact not found: %s", artifact)
	}

	var upstream, downstream []string
	if opts.Upstream {
		upstream = upstreamWithDepth(g, artifact, opts.Depth)
	}
	if opts.Downstream {
		downstream = downstreamWithDepth(g, artifact, opts.Depth)
	}

	if r.EffectiveMode() == output.ModeJSON {
		traceOutput := output.TraceOutput{
			Root: artifact,
			Type: string(node.Type),
			Direct: output.TraceLevels{
				Upstream:   g.GetOrigins(artifact),
				Downstream: g.GetConsumers(artifact),
			},
			Transitive: output.TraceLevels{
				Upstream:   upstream,
				Downstream: downstream,
			},
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(traceOutput)
	}

	r.Header(1, fmt.Sprintf("Lineage for %s", artifact))
	r.KeyValue("Type", string(node.Type))
	r.Println("")

	if opts.Upstream {
		r.Header(2, fmt.Sprintf("Upstream (%d)", len(upstream)))
		for _, id := range upstream {
			r.Printf("- %s\n", traceLine(g, id, id, artifact))
		}
		r.Println("")
	}

	if opts.Downstream {
		r.Header(2, fmt.Sprintf("Downstream (%d)", len(downstream)))
		for _, id := range downstream {
			r.Printf("- %s\n", traceLine(g, id, artifact, id))
		}
	}

	return nil
}

// traceLine renders one traced artifact name, annotated with the
// transformation label when the hop is a direct edge of the root.
func traceLine(g *lineage.Graph, name, source, target string) string {
	if label, ok := g.EdgeLabel(source, target); ok && label != "" {
		return fmt.Sprintf("%s (%s)", name, label)
	}
	return name
}

// upstreamWithDepth returns upstream artifacts with an optional depth limit.
func upstreamWithDepth(g *lineage.Graph, nodeID string, maxDepth int) []string {
	if maxDepth == 0 {
		return g.GetUpstream(nodeID)
	}

	visited := make(map[string]bool)
	var result []string

	var traverse func(id string, depth int)
	traverse = func(id string, depth int) {
		if depth > maxDepth {
			return
		}
		for _, origin := range g.GetOrigins(id) {
			if !visited[origin] {
				visited[origin] = true
				result = append(result, origin)
				traverse(origin, depth+1)
			}
		}
	}

	traverse(nodeID, 1)
	sort.Strings(result)
	return result
}

// downstreamWithDepth returns downstream artifacts with an optional depth limit.
func downstreamWithDepth(g *lineage.Graph, nodeID string, maxDepth int) []string {
	if maxDepth == 0 {
		return g.GetDownstream(nodeID)
	}

	visited := make(map[string]bool)
	var result []string

	var traverse func(id string, depth int)
	traverse = func(id string, depth int) {
		if depth > maxDepth {
			return
		}
		for _, consumer := range g.GetConsumers(id) {
			if !visited[consumer] {
				visited[consumer] = true
				result = append(result, consumer)
				traverse(consumer, depth+1)
			}
		}
	}

	traverse(nodeID, 1)
	sort.Strings(result)
	return result
}
