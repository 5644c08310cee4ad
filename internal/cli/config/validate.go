package config

import (
	"fmt"
	"os"
)

// validOutputFormats are the accepted values for the output setting.
var validOutputFormats = map[string]bool{
	"":         true,
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	return nil
}

// ValidateInput checks that the mapping file exists. Split from Validate so
// help and init can run without one.
func (c *Config) ValidateInput() error {
	if _, err := os.Stat(c.Input); os.IsNotExist(err) {
		return fmt.Errorf("mapping file does not exist: %s\nHint: Run 'leaplineage init' to scaffold one, or use --input to point at your mapping", c.Input)
	}
	return nil
}
