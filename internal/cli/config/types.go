// Package config provides configuration management for the leaplineage CLI.
//
// Configuration is layered: defaults, then leaplineage.yaml, then
// LEAPLINEAGE_* environment variables, then flags that were explicitly set.
package config

// RenderConfig holds options for the HTML artifact.
type RenderConfig struct {
	Height  string `koanf:"height"`
	Width   string `koanf:"width"`
	Physics bool   `koanf:"physics"`
}

// ServeConfig holds options for the serve command.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// Config holds all CLI configuration options.
type Config struct {
	Input        string       `koanf:"input"`
	Artifact     string       `koanf:"artifact"`
	Style        string       `koanf:"style"`
	Placeholders []string     `koanf:"placeholders"`
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Render       RenderConfig `koanf:"render"`
	Serve        ServeConfig  `koanf:"serve"`

	// ProjectRoot is the directory relative paths resolve against. It is
	// derived at load time, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultInput    = "data_mapping.csv"
	DefaultArtifact = "lineage_graph.html"
	DefaultHeight   = "800px"
	DefaultWidth    = "100%"
	DefaultAddr     = ":4173"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultPlaceholders returns the tokens treated as "no value" in mapping
// cells. Returned fresh so callers can append without sharing state.
func DefaultPlaceholders() []string {
	return []string{"-", "—"}
}
