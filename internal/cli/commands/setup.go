package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/leaplineage/internal/cli/config"
	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/leapstack-labs/leaplineage/internal/mapping"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config and
// output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// loadGraph parses the configured mapping file and folds it into a lineage
// graph. Malformed rows are logged as warnings and do not fail the load; a
// missing mapping file does.
func (c *CommandContext) loadGraph() (*lineage.Graph, *mapping.Result, error) {
	res, err := mapping.ParseFile(c.Cfg.Input, mapping.Options{
		Placeholders: c.Cfg.Placeholders,
		Logger:       c.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	for _, w := range res.Warnings {
		c.Logger.Warn("malformed mapping row", "row", w.Row, "message", w.Message)
	}

	g := lineage.Build(res.Records, lineage.BuildOptions{Placeholders: c.Cfg.Placeholders})
	return g, res, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	input := getEnvOrDefault("LEAPLINEAGE_INPUT", config.DefaultInput)
	artifact := getEnvOrDefault("LEAPLINEAGE_ARTIFACT", config.DefaultArtifact)
	style := os.Getenv("LEAPLINEAGE_STYLE")
	verbose := os.Getenv("LEAPLINEAGE_VERBOSE") == "true"
	outputFormat := getEnvOrDefault("LEAPLINEAGE_OUTPUT", config.DefaultOutput)

	return &config.Config{
		Input:        input,
		Artifact:     artifact,
		Style:        style,
		Placeholders: config.DefaultPlaceholders(),
		Verbose:      verbose,
		OutputFormat: outputFormat,
		Render: config.RenderConfig{
			Height:  config.DefaultHeight,
			Width:   config.DefaultWidth,
			Physics: true,
		},
		Serve: config.ServeConfig{
			Addr:  config.DefaultAddr,
			Watch: true,
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
