// Package lineage builds directed data-lineage graphs from mapping records.
// It owns the node and edge tables, classifies artifacts into semantic types,
// and exposes the finished graph to render adapters.
package lineage

import (
	"fmt"
	"sort"
)

// NodeType categorizes an artifact for styling and reporting.
type NodeType string

const (
	// TypeFile is a flat-file artifact (CSV, parquet, anything path-like).
	TypeFile NodeType = "file"
	// TypeTable is a schema-qualified relational table.
	TypeTable NodeType = "table"
	// TypeDataFrame is an in-memory or derived intermediate artifact.
	TypeDataFrame NodeType = "dataframe"
	// TypeFinalTable is a terminal, published artifact.
	TypeFinalTable NodeType = "final_table"
)

// Node represents a single artifact in the lineage.
type Node struct {
	// ID is the artifact name (unique key)
	ID string
	// Type is fixed at creation; the only later change is promotion to TypeFinalTable
	Type NodeType
}

// Edge represents a directed relation between two artifacts.
type Edge struct {
	Source string
	Target string
	// Label is the transformation text; empty when the mapping gave none
	Label string
}

// Graph is a simple directed graph of artifacts. The edge table is keyed by
// (source, target): writing the same pair again overwrites the label rather
// than accumulating. Self-loops are never created.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string]map[string]string // source -> target -> label
	parents map[string][]string          // target -> sources
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string]map[string]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. If the node already exists its type is
// kept; classification is decided on first reference.
func (g *Graph) AddNode(id string, typ NodeType) *Node {
	if node, exists := g.nodes[id]; exists {
		return node
	}
	node := &Node{ID: id, Type: typ}
	g.nodes[id] = node
	g.edges[id] = make(map[string]string)
	g.parents[id] = []string{}
	return node
}

// PromoteFinal marks an artifact as a final table, creating the node if it
// does not exist yet. This is the one type change allowed after creation.
func (g *Graph) PromoteFinal(id string) *Node {
	node := g.AddNode(id, TypeFinalTable)
	node.Type = TypeFinalTable
	return node
}

// SetEdge adds or overwrites the directed edge source -> target. A repeated
// (source, target) pair replaces the label (last write wins). A self-loop is
// skipped without error.
func (g *Graph) SetEdge(source, target, label string) error {
	if _, exists := g.nodes[source]; !exists {
		return fmt.Errorf("source node %q does not exist", source)
	}
	if _, exists := g.nodes[target]; !exists {
		return fmt.Errorf("target node %q does not exist", target)
	}
	if source == target {
		return nil
	}

	if _, exists := g.edges[source][target]; !exists {
		g.parents[target] = append(g.parents[target], source)
	}
	g.edges[source][target] = label
	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// EdgeLabel returns the label of the edge source -> target, if present.
func (g *Graph) EdgeLabel(source, target string) (string, bool) {
	label, exists := g.edges[source][target]
	return label, exists
}

// Nodes returns every node in the graph, including isolated ones.
// Sorted by ID for deterministic output.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// Edges returns every edge in the graph, sorted by (source, target).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for source, targets := range g.edges {
		for target, label := range targets {
			edges = append(edges, Edge{Source: source, Target: target, Label: label})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.edges {
		count += len(targets)
	}
	return count
}

// InDegree returns the number of edges pointing at the node. Degrees are
// projections over the live edge table, not stored state.
func (g *Graph) InDegree(id string) int {
	return len(g.parents[id])
}

// OutDegree returns the number of edges leaving the node.
func (g *Graph) OutDegree(id string) int {
	return len(g.edges[id])
}

// GetOrigins returns the direct upstream artifacts of a node, sorted.
func (g *Graph) GetOrigins(id string) []string {
	origins := make([]string, len(g.parents[id]))
	copy(origins, g.parents[id])
	sort.Strings(origins)
	return origins
}

// GetConsumers returns the direct downstream artifacts of a node, sorted.
func (g *Graph) GetConsumers(id string) []string {
	consumers := make([]string, 0, len(g.edges[id]))
	for target := range g.edges[id] {
		consumers = append(consumers, target)
	}
	sort.Strings(consumers)
	return consumers
}

// GetUpstream returns every artifact the given node transitively derives from.
func (g *Graph) GetUpstream(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, source := range g.parents[nodeID] {
			if !upstream[source] {
				upstream[source] = true
				mark(source)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(upstream))
	for nodeID := range upstream {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// GetDownstream returns every artifact transitively derived from the given node.
func (g *Graph) GetDownstream(id string) []string {
	downstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for target := range g.edges[nodeID] {
			if !downstream[target] {
				downstream[target] = true
				mark(target)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(downstream))
	for nodeID := range downstream {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// GetRoots returns artifacts with no origins, sorted.
func (g *Graph) GetRoots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// GetLeaves returns artifacts nothing is derived from, sorted.
func (g *Graph) GetLeaves() []string {
	var leaves []string
	for id := range g.nodes {
		if len(g.edges[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// Isolated returns artifacts with no edges at all, sorted. A mapping may list
// terminal artifacts before their lineage is known, so these are expected.
func (g *Graph) Isolated() []string {
	var isolated []string
	for id := range g.nodes {
		if len(g.parents[id]) == 0 && len(g.edges[id]) == 0 {
			isolated = append(isolated, id)
		}
	}
	sort.Strings(isolated)
	return isolated
}
