// Package render turns a finished lineage graph into visual artifacts: a
// self-contained interactive HTML page and a JSON graph document. The graph
// is handed over whole; every node the builder created is visible here,
// including isolated ones.
package render

import (
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
)

// GraphNode is the per-artifact view handed to renderers.
type GraphNode struct {
	ID        string           `json:"id"`
	Type      lineage.NodeType `json:"type"`
	InDegree  int              `json:"in_degree"`
	OutDegree int              `json:"out_degree"`
}

// GraphEdge is the per-relation view handed to renderers.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Stats contains counts for the artifact header and the stats command.
type Stats struct {
	NodeCount       int `json:"node_count"`
	EdgeCount       int `json:"edge_count"`
	FileCount       int `json:"file_count"`
	TableCount      int `json:"table_count"`
	DataFrameCount  int `json:"dataframe_count"`
	FinalTableCount int `json:"final_table_count"`
	IsolatedCount   int `json:"isolated_count"`
}

// Document is the complete render payload: the full node and edge sets plus
// build metadata. It is what the JSON export and the serve endpoint emit.
type Document struct {
	GeneratedAt time.Time   `json:"generated_at"`
	BuildID     string      `json:"build_id"`
	Nodes       []GraphNode `json:"nodes"`
	Edges       []GraphEdge `json:"edges"`
	Stats       Stats       `json:"stats"`
}

// NewDocument projects a lineage graph into a render document. Node and edge
// order follow the graph's deterministic accessors.
func NewDocument(g *lineage.Graph) *Document {
	doc := &Document{
		GeneratedAt: time.Now().UTC(),
		BuildID:     uuid.New().String(),
		Nodes:       make([]GraphNode, 0, g.NodeCount()),
		Edges:       make([]GraphEdge, 0, g.EdgeCount()),
	}

	for _, node := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, GraphNode{
			ID:        node.ID,
			Type:      node.Type,
			InDegree:  g.InDegree(node.ID),
			OutDegree: g.OutDegree(node.ID),
		})
		switch node.Type {
		case lineage.TypeFile:
			doc.Stats.FileCount++
		case lineage.TypeTable:
			doc.Stats.TableCount++
		case lineage.TypeDataFrame:
			doc.Stats.DataFrameCount++
		case lineage.TypeFinalTable:
			doc.Stats.FinalTableCount++
		}
	}

	for _, edge := range g.Edges() {
		doc.Edges = append(doc.Edges, GraphEdge{
			Source: edge.Source,
			Target: edge.Target,
			Label:  edge.Label,
		})
	}

	doc.Stats.NodeCount = g.NodeCount()
	doc.Stats.EdgeCount = g.EdgeCount()
	doc.Stats.IsolatedCount = len(g.Isolated())
	return doc
}
