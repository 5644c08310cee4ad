package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new LeapLineage project",
		Long: `Initialize a new LeapLineage project with a starter mapping and configuration.

This creates:
  - leaplineage.yaml configuration file
  - data_mapping.csv starter mapping
  - .gitignore for generated artifacts

Use --example to start from a full sales pipeline demonstrating files,
tables, dataframes, and final tables, plus a custom style palette.`,
		Example: `  # Initialize in current directory
  leaplineage init

  # Initialize with the example pipeline
  leaplineage init --example

  # Initialize in a new directory
  leaplineage init my-lineage --example

  # Force overwrite existing config
  leaplineage init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create the example sales pipeline")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, "leaplineage.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("leaplineage.yaml already exists. Use --force to overwrite")
	}

	files, err := copyTemplate(template, dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("LeapLineage project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Describe your pipeline in data_mapping.csv")
	r.Println("  2. Run 'leaplineage render' to build the graph artifact")
	r.Println("  3. Run 'leaplineage serve' to explore it with live reload")

	return nil
}
