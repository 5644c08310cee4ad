package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/leapstack-labs/leaplineage/internal/mapping"
)

// testGraph builds a small pipeline covering all four artifact types plus one
// isolated final table.
func testGraph(t *testing.T) *lineage.Graph {
	t.Helper()
	records := []mapping.Record{
		{DataFrame: "pedidos_df", Origins: []string{"data/pedidos.csv"}, Transformation: "read_csv"},
		{DataFrame: "pedidos_clientes_df", Origins: []string{"pedidos_df", "cliente_endereco_df"}, Transformation: "join"},
		{FinalTable: "vendas_por_cidade", DataFrame: "fato_vendas_df", Origins: []string{"pedidos_clientes_df", "itens_produtos_df"}, Transformation: "join+groupby"},
		{DataFrame: "vw_vendas", Origins: []string{"analytics.vendas"}, Transformation: "create view"},
		{FinalTable: "relatorio_mensal"},
	}
	return lineage.Build(records, lineage.BuildOptions{})
}

func TestNewDocument_Projection(t *testing.T) {
	doc := NewDocument(testGraph(t))

	assert.Len(t, doc.Nodes, 10)
	assert.Len(t, doc.Edges, 7)
	require.NotEmpty(t, doc.BuildID)
	assert.WithinDuration(t, time.Now().UTC(), doc.GeneratedAt, time.Minute)

	byID := make(map[string]GraphNode, len(doc.Nodes))
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, lineage.TypeFile, byID["data/pedidos.csv"].Type)
	assert.Equal(t, lineage.TypeTable, byID["analytics.vendas"].Type)
	assert.Equal(t, lineage.TypeFinalTable, byID["vendas_por_cidade"].Type)
	assert.Equal(t, lineage.TypeDataFrame, byID["pedidos_clientes_df"].Type)

	fato := byID["fato_vendas_df"]
	assert.Equal(t, 2, fato.InDegree)
	assert.Equal(t, 1, fato.OutDegree)
}

func TestNewDocument_Stats(t *testing.T) {
	doc := NewDocument(testGraph(t))

	assert.Equal(t, Stats{
		NodeCount:       10,
		EdgeCount:       7,
		FileCount:       1,
		TableCount:      1,
		DataFrameCount:  6,
		FinalTableCount: 2,
		IsolatedCount:   1,
	}, doc.Stats)
}

func TestNewDocument_SortedOutput(t *testing.T) {
	doc := NewDocument(testGraph(t))

	for i := 1; i < len(doc.Nodes); i++ {
		assert.LessOrEqual(t, doc.Nodes[i-1].ID, doc.Nodes[i].ID)
	}
	for i := 1; i < len(doc.Edges); i++ {
		prev, cur := doc.Edges[i-1], doc.Edges[i]
		if prev.Source == cur.Source {
			assert.LessOrEqual(t, prev.Target, cur.Target)
		} else {
			assert.Less(t, prev.Source, cur.Source)
		}
	}
}

func TestNewDocument_EmptyGraph(t *testing.T) {
	doc := NewDocument(lineage.NewGraph())

	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Edges)
	assert.Equal(t, Stats{}, doc.Stats)
	assert.NotEmpty(t, doc.BuildID)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	doc := NewDocument(testGraph(t))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc.BuildID, decoded.BuildID)
	assert.Equal(t, doc.Stats, decoded.Stats)
	assert.Equal(t, doc.Nodes, decoded.Nodes)
	assert.Equal(t, doc.Edges, decoded.Edges)
}

func TestWriteJSONFile(t *testing.T) {
	doc := NewDocument(testGraph(t))
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, WriteJSONFile(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"build_id"`)
	assert.Contains(t, string(data), `"in_degree"`)
}
