package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"time"
)

//go:embed assets/graph.html.tmpl
var graphTemplate string

const (
	defaultTitle  = "Data Lineage"
	defaultHeight = "800px"
	defaultWidth  = "100%"
)

// Options control the HTML artifact.
type Options struct {
	// Title is the page heading; defaults to "Data Lineage"
	Title string
	// Height and Width size the network canvas; default 800px / 100%
	Height string
	Width  string
	// DisablePhysics freezes the layout instead of running force-atlas
	DisablePhysics bool
	// Styles maps artifact types to colors and shapes; defaults to DefaultStyles
	Styles map[string]NodeStyle
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = defaultTitle
	}
	if o.Height == "" {
		o.Height = defaultHeight
	}
	if o.Width == "" {
		o.Width = defaultWidth
	}
	if o.Styles == nil {
		o.Styles = DefaultStyles()
	}
	return o
}

// visNode is the node payload for the embedded vis-network dataset.
type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

// visEdge is the edge payload for the embedded vis-network dataset.
type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label,omitempty"`
	Title  string `json:"title,omitempty"`
	Arrows string `json:"arrows"`
}

type templateData struct {
	Title       string
	GeneratedAt string
	BuildID     string
	Stats       Stats
	Width       template.CSS
	Height      template.CSS
	NodesJSON   template.JS
	EdgesJSON   template.JS
	OptionsJSON template.JS
	ExtraJS     template.JS
}

// WriteHTML renders the document as a self-contained interactive page.
func WriteHTML(w io.Writer, doc *Document, opts Options) error {
	page, err := renderHTML(doc, opts, "")
	if err != nil {
		return err
	}
	_, err = w.Write(page)
	return err
}

// WriteHTMLFile renders the document and writes it to path.
func WriteHTMLFile(path string, doc *Document, opts Options) error {
	page, err := renderHTML(doc, opts, "")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0600); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// renderHTML executes the embedded template. extraJS is appended to the page
// script block; the dev server uses it to inject the live-reload client.
func renderHTML(doc *Document, opts Options, extraJS string) ([]byte, error) {
	opts = opts.withDefaults()

	nodes, edges := buildVisData(doc, opts.Styles)
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal edges: %w", err)
	}
	optionsJSON, err := json.Marshal(visOptions(opts.DisablePhysics))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}

	tmpl, err := template.New("graph").Parse(graphTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	//nolint:gosec // G203: injected fragments are generated internally, not user input
	data := templateData{
		Title:       opts.Title,
		GeneratedAt: doc.GeneratedAt.Format(time.RFC3339),
		BuildID:     doc.BuildID,
		Stats:       doc.Stats,
		Width:       template.CSS(opts.Width),
		Height:      template.CSS(opts.Height),
		NodesJSON:   template.JS(nodesJSON),
		EdgesJSON:   template.JS(edgesJSON),
		OptionsJSON: template.JS(optionsJSON),
		ExtraJS:     template.JS(extraJS),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// buildVisData projects the document into vis-network datasets, resolving
// styling per node type. Tooltips carry the type and live degree counts.
func buildVisData(doc *Document, styles map[string]NodeStyle) ([]visNode, []visEdge) {
	nodes := make([]visNode, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		style := styleFor(styles, n.Type)
		nodes = append(nodes, visNode{
			ID:    n.ID,
			Label: n.ID,
			Title: fmt.Sprintf("<b>%s</b><br>Type: %s<br>In: %d | Out: %d",
				html.EscapeString(n.ID), n.Type, n.InDegree, n.OutDegree),
			Color: style.Color,
			Shape: style.Shape,
		})
	}

	edges := make([]visEdge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, visEdge{
			From:   e.Source,
			To:     e.Target,
			Label:  e.Label,
			Title:  e.Label,
			Arrows: "to",
		})
	}
	return nodes, edges
}

// visOptions returns the network options block: force-atlas layout with the
// tuning the artifact has always shipped with, manipulation disabled.
func visOptions(disablePhysics bool) map[string]any {
	physics := map[string]any{
		"forceAtlas2Based": map[string]any{
			"gravitationalConstant": -50,
			"springLength":          100,
		},
		"solver": "forceAtlas2Based",
	}
	if disablePhysics {
		physics = map[string]any{"enabled": false}
	}
	return map[string]any{
		"physics":      physics,
		"manipulation": map[string]any{"enabled": false},
	}
}
