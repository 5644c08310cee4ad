// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplineage/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderCommand(t *testing.T) {
	cmd := NewRenderCommand()

	assert.Equal(t, "render", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist (output is a global flag on root, not local)
	flags := []string{"out", "style", "title", "height", "width", "physics", "manifest"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("type"), "flag \"type\" should exist")
}

func TestNewEdgesCommand(t *testing.T) {
	cmd := NewEdgesCommand()

	assert.Equal(t, "edges", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewStatsCommand(t *testing.T) {
	cmd := NewStatsCommand()

	assert.Equal(t, "stats", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewTraceCommand(t *testing.T) {
	cmd := NewTraceCommand()

	assert.Equal(t, "trace <artifact>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"upstream", "downstream", "depth"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"addr", "watch", "open"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewExploreCommand(t *testing.T) {
	cmd := NewExploreCommand()

	assert.Equal(t, "explore", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestGetConfig_EnvFallback(t *testing.T) {
	config.ResetConfig()
	t.Setenv("LEAPLINEAGE_INPUT", "env_mapping.csv")
	t.Setenv("LEAPLINEAGE_OUTPUT", "json")

	cfg := getConfig()

	assert.Equal(t, "env_mapping.csv", cfg.Input)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, config.DefaultArtifact, cfg.Artifact)
	assert.Equal(t, []string{"-", "—"}, cfg.Placeholders)
	assert.True(t, cfg.Render.Physics)
	assert.Equal(t, config.DefaultAddr, cfg.Serve.Addr)
}

func TestCommandContext_LoadGraph(t *testing.T) {
	config.ResetConfig()
	mappingPath := filepath.Join(t.TempDir(), "data_mapping.csv")
	writeTestMapping(t, mappingPath)
	t.Setenv("LEAPLINEAGE_INPUT", mappingPath)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	cmdCtx := NewCommandContext(cmd)
	g, res, err := cmdCtx.loadGraph()
	require.NoError(t, err)

	assert.Equal(t, 7, g.NodeCount())
	assert.Equal(t, 6, g.EdgeCount())
	assert.Empty(t, res.Warnings)
}

func TestCommandContext_LoadGraphMissingInput(t *testing.T) {
	config.ResetConfig()
	t.Setenv("LEAPLINEAGE_INPUT", filepath.Join(t.TempDir(), "absent.csv"))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	cmdCtx := NewCommandContext(cmd)
	_, _, err := cmdCtx.loadGraph()
	require.Error(t, err)
}

func TestValidArtifactType(t *testing.T) {
	for _, typ := range []string{"file", "table", "dataframe", "final_table"} {
		assert.True(t, validArtifactType(typ), "type %q should be valid", typ)
	}
	assert.False(t, validArtifactType("spreadsheet"))
	assert.False(t, validArtifactType(""))
}

const testMappingRows = `Tabela Final,DataFrame,Origem,Transformação
,clientes_df,data/clientes.csv,read_csv
,pedidos_df,data/pedidos.csv,read_csv
,pedidos_clientes_df,"pedidos_df, clientes_df",join on cliente_id
relatorio,resumo_df,pedidos_clientes_df,groupby cidade
`

func writeTestMapping(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(testMappingRows), 0600))
}
