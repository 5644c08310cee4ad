package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/render"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Out      string
	Style    string
	Title    string
	Height   string
	Width    string
	Physics  bool
	Manifest bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the lineage graph to an HTML artifact",
		Long: `Parse the mapping file, build the lineage graph, and write an interactive
HTML artifact. The page is self-contained apart from the vis-network CDN
script and can be opened directly in a browser.

Output adapts to environment:
  - Terminal: Styled status lines
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Render with defaults (data_mapping.csv -> lineage_graph.html)
  leaplineage render

  # Render a specific mapping to a specific artifact
  leaplineage render --input etl/mapping.csv --out public/lineage.html

  # Apply a custom style palette
  leaplineage render --style styles.yaml

  # Also write a machine-readable manifest next to the artifact
  leaplineage render --manifest

  # Emit the result summary as JSON
  leaplineage render --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Artifact path (default from config)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "YAML style palette overriding the built-in colors")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Page title for the artifact")
	cmd.Flags().StringVar(&opts.Height, "height", "", "Canvas height, e.g. 800px")
	cmd.Flags().StringVar(&opts.Width, "width", "", "Canvas width, e.g. 100%")
	cmd.Flags().BoolVar(&opts.Physics, "physics", true, "Enable force-directed layout")
	cmd.Flags().BoolVar(&opts.Manifest, "manifest", false, "Also write a JSON manifest next to the artifact")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	artifact := cfg.Artifact
	if opts.Out != "" {
		artifact = opts.Out
	}

	stylePath := cfg.Style
	if cmd.Flags().Changed("style") {
		stylePath = opts.Style
	}

	height := cfg.Render.Height
	if cmd.Flags().Changed("height") {
		height = opts.Height
	}
	width := cfg.Render.Width
	if cmd.Flags().Changed("width") {
		width = opts.Width
	}
	physics := cfg.Render.Physics
	if cmd.Flags().Changed("physics") {
		physics = opts.Physics
	}

	styles := render.DefaultStyles()
	if stylePath != "" {
		var err error
		styles, err = render.LoadStyles(stylePath)
		if err != nil {
			return err
		}
	}

	g, res, err := cmdCtx.loadGraph()
	if err != nil {
		return err
	}

	doc := render.NewDocument(g)
	renderOpts := render.Options{
		Title:          opts.Title,
		Height:         height,
		Width:          width,
		DisablePhysics: !physics,
		Styles:         styles,
	}

	if err := render.WriteHTMLFile(artifact, doc, renderOpts); err != nil {
		return err
	}

	manifestPath := ""
	if opts.Manifest {
		manifestPath = strings.TrimSuffix(artifact, filepath.Ext(artifact)) + ".json"
		if err := render.WriteJSONFile(manifestPath, doc); err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		renderOutput := output.RenderOutput{
			Artifact: artifact,
			Manifest: manifestPath,
			Nodes:    doc.Stats.NodeCount,
			Edges:    doc.Stats.EdgeCount,
			Warnings: len(res.Warnings),
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(renderOutput)
	}

	r.StatusLine(artifact, "success", fmt.Sprintf("%d artifacts, %d edges", doc.Stats.NodeCount, doc.Stats.EdgeCount))
	if manifestPath != "" {
		r.StatusLine(manifestPath, "success", "manifest")
	}
	if len(res.Warnings) > 0 {
		r.Warnf("%d malformed mapping rows were padded or skipped", len(res.Warnings))
	}
	return nil
}
