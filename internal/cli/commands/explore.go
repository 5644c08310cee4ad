package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/spf13/cobra"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the lineage graph interactively",
		Long: `Open an interactive prompt over the lineage graph. Type an artifact name
to see its type, origins, and consumers; dot-commands inspect the whole
graph. Tab completion works for artifact names.`,
		Example: `  # Explore the configured mapping
  leaplineage explore

  # Explore a specific mapping
  leaplineage explore --input etl/mapping.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplore(cmd)
		},
	}

	return cmd
}

func runExplore(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	// Fail before the prompt starts, not on the first command
	if err := cfg.ValidateInput(); err != nil {
		return err
	}

	g, _, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	// Setup history file (project-local)
	historyFile := filepath.Join(filepath.Dir(cfg.Input), ".leaplineage_history")

	completer := newArtifactCompleter(g)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lineage> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize explorer: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()

	// Print welcome message
	_, _ = fmt.Fprintf(out, "LeapLineage Explorer (mapping: %s)\n", cfg.Input)
	_, _ = fmt.Fprintf(out, "%d artifacts, %d relations\n", g.NodeCount(), g.EdgeCount())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	// Explorer loop
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handled := handleExploreCommand(cmd, g, line); handled {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Bare word: show the artifact card
		if _, ok := g.GetNode(line); !ok {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown artifact: %s (try .nodes)\n", line)
			continue
		}
		showArtifact(out, g, line)
	}

	return nil
}

func handleExploreCommand(cmd *cobra.Command, g *lineage.Graph, line string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printExploreHelp(out)
		return true

	case ".nodes":
		typeFilter := ""
		if len(parts) > 1 {
			typeFilter = parts[1]
			if !validArtifactType(typeFilter) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown artifact type: %s\n", typeFilter)
				return true
			}
		}
		for _, n := range g.Nodes() {
			if typeFilter != "" && string(n.Type) != typeFilter {
				continue
			}
			_, _ = fmt.Fprintf(out, "  %-40s [%s]\n", n.ID, n.Type)
		}
		return true

	case ".edges":
		for _, e := range g.Edges() {
			if e.Label != "" {
				_, _ = fmt.Fprintf(out, "  %s -> %s (%s)\n", e.Source, e.Target, e.Label)
			} else {
				_, _ = fmt.Fprintf(out, "  %s -> %s\n", e.Source, e.Target)
			}
		}
		return true

	case ".stats":
		stats := collectStats(g)
		_, _ = fmt.Fprintf(out, "  Artifacts: %d\n", stats.Nodes)
		_, _ = fmt.Fprintf(out, "  Relations: %d\n", stats.Edges)
		for typ, n := range stats.ByType {
			_, _ = fmt.Fprintf(out, "  %s: %d\n", typ, n)
		}
		if len(stats.Isolated) > 0 {
			_, _ = fmt.Fprintf(out, "  Isolated: %s\n", strings.Join(stats.Isolated, ", "))
		}
		return true

	case ".trace":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .trace <artifact>")
			return true
		}
		name := parts[1]
		if _, ok := g.GetNode(name); !ok {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown artifact: %s\n", name)
			return true
		}
		upstream := g.GetUpstream(name)
		downstream := g.GetDownstream(name)
		_, _ = fmt.Fprintf(out, "  Upstream (%d): %s\n", len(upstream), strings.Join(upstream, ", "))
		_, _ = fmt.Fprintf(out, "  Downstream (%d): %s\n", len(downstream), strings.Join(downstream, ", "))
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func showArtifact(w io.Writer, g *lineage.Graph, name string) {
	node, _ := g.GetNode(name)
	_, _ = fmt.Fprintf(w, "%s [%s]\n", node.ID, node.Type)

	origins := g.GetOrigins(name)
	_, _ = fmt.Fprintf(w, "  Origins (%d):\n", len(origins))
	for _, origin := range origins {
		if label, ok := g.EdgeLabel(origin, name); ok && label != "" {
			_, _ = fmt.Fprintf(w, "    <- %s (%s)\n", origin, label)
		} else {
			_, _ = fmt.Fprintf(w, "    <- %s\n", origin)
		}
	}

	consumers := g.GetConsumers(name)
	_, _ = fmt.Fprintf(w, "  Consumers (%d):\n", len(consumers))
	for _, consumer := range consumers {
		if label, ok := g.EdgeLabel(name, consumer); ok && label != "" {
			_, _ = fmt.Fprintf(w, "    -> %s (%s)\n", consumer, label)
		} else {
			_, _ = fmt.Fprintf(w, "    -> %s\n", consumer)
		}
	}
}

func printExploreHelp(w io.Writer) {
	help := `
Commands:
  <artifact>       Show type, origins, and consumers for an artifact
  .nodes [type]    List artifacts, optionally filtered by type
  .edges           List all relations
  .stats           Show graph summary
  .trace <name>    Show transitive upstream and downstream sets
  .clear           Clear the screen
  .help            Show this help message
  .quit / .exit    Exit the explorer

Tips:
  - Use arrow keys to navigate history
  - Tab completion works for artifact names
`
	_, _ = fmt.Fprintln(w, help)
}

// newArtifactCompleter creates a readline completer for artifact names.
func newArtifactCompleter(g *lineage.Graph) *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	var traceNames []readline.PrefixCompleterInterface
	for _, n := range g.Nodes() {
		names = append(names, readline.PcItem(n.ID))
		traceNames = append(traceNames, readline.PcItem(n.ID))
	}

	items := names
	items = append(items,
		readline.PcItem(".nodes",
			readline.PcItem("file"),
			readline.PcItem("table"),
			readline.PcItem("dataframe"),
			readline.PcItem("final_table"),
		),
		readline.PcItem(".edges"),
		readline.PcItem(".stats"),
		readline.PcItem(".trace", traceNames...),
		readline.PcItem(".clear"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
