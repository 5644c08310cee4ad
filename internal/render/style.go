package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplineage/internal/lineage"
)

// NodeStyle controls how one artifact type is drawn.
type NodeStyle struct {
	Color string `json:"color" yaml:"color"`
	Shape string `json:"shape" yaml:"shape"`
}

// fallbackStyle is used for any type without an entry in the style map.
var fallbackStyle = NodeStyle{Color: "#888", Shape: "dot"}

// DefaultStyles returns the built-in palette, keyed by artifact type.
func DefaultStyles() map[string]NodeStyle {
	return map[string]NodeStyle{
		string(lineage.TypeFile):       {Color: "#f4a261", Shape: "box"},
		string(lineage.TypeTable):      {Color: "#2a9d8f", Shape: "ellipse"},
		string(lineage.TypeDataFrame):  {Color: "#264653", Shape: "dot"},
		string(lineage.TypeFinalTable): {Color: "#e76f51", Shape: "diamond"},
	}
}

// LoadStyles reads a YAML style file and merges it over the defaults. Keys
// must be artifact type names; empty color or shape values keep the default.
func LoadStyles(path string) (map[string]NodeStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}

	var overrides map[string]NodeStyle
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse style file %s: %w", path, err)
	}

	styles := DefaultStyles()
	for key, override := range overrides {
		base, ok := styles[key]
		if !ok {
			return nil, fmt.Errorf("unknown artifact type %q in style file %s", key, path)
		}
		if override.Color != "" {
			base.Color = override.Color
		}
		if override.Shape != "" {
			base.Shape = override.Shape
		}
		styles[key] = base
	}
	return styles, nil
}

// styleFor resolves the style for a node type.
func styleFor(styles map[string]NodeStyle, typ lineage.NodeType) NodeStyle {
	if style, ok := styles[string(typ)]; ok {
		return style
	}
	return fallbackStyle
}
