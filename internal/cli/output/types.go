package output

// ArtifactInfo describes one artifact for the list command.
type ArtifactInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
	Isolated  bool   `json:"isolated,omitempty"`
}

// ListSummary aggregates counts for the list command.
type ListSummary struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// ListOutput is the list command's JSON document.
type ListOutput struct {
	Summary   ListSummary    `json:"summary"`
	Artifacts []ArtifactInfo `json:"artifacts"`
}

// EdgeInfo describes one relation for the edges command.
type EdgeInfo struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// EdgesOutput is the edges command's JSON document.
type EdgesOutput struct {
	Total int        `json:"total"`
	Edges []EdgeInfo `json:"edges"`
}

// StatsOutput is the stats command's JSON document.
type StatsOutput struct {
	Nodes    int            `json:"nodes"`
	Edges    int            `json:"edges"`
	ByType   map[string]int `json:"by_type"`
	Isolated []string       `json:"isolated"`
	Roots    []string       `json:"roots"`
	Leaves   []string       `json:"leaves"`
}

// TraceLevels pairs the two traversal directions.
type TraceLevels struct {
	Upstream   []string `json:"upstream"`
	Downstream []string `json:"downstream"`
}

// TraceOutput is the trace command's JSON document.
type TraceOutput struct {
	Root       string      `json:"root"`
	Type       string      `json:"type"`
	Direct     TraceLevels `json:"direct"`
	Transitive TraceLevels `json:"transitive"`
}

// RenderOutput is the render command's JSON document.
type RenderOutput struct {
	Artifact string `json:"artifact"`
	Manifest string `json:"manifest,omitempty"`
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
	Warnings int    `json:"warnings"`
}
