package mapping

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalMapping(t *testing.T) {
	input := `Tabela Final,DataFrame,Origem,Transformação
,clientes_df,data/clientes.csv,read_csv
vendas_por_cidade,fato_vendas_df,"pedidos_clientes_df, itens_produtos_df",join+groupby
`

	result, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Missing)

	assert.Equal(t, Record{
		DataFrame:      "clientes_df",
		Origins:        []string{"data/clientes.csv"},
		Transformation: "read_csv",
	}, result.Records[0])

	assert.Equal(t, Record{
		FinalTable:     "vendas_por_cidade",
		DataFrame:      "fato_vendas_df",
		Origins:        []string{"pedidos_clientes_df", "itens_produtos_df"},
		Transformation: "join+groupby",
	}, result.Records[1])
}

func TestParse_EnglishAliases(t *testing.T) {
	input := `FINAL_TABLE,df,Origin,transform
sales,sales_df,"orders_df, items_df",aggregate
`

	result, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "sales", rec.FinalTable)
	assert.Equal(t, "sales_df", rec.DataFrame)
	assert.Equal(t, []string{"orders_df", "items_df"}, rec.Origins)
	assert.Equal(t, "aggregate", rec.Transformation)
}

func TestParse_MissingColumnsDefaultEmpty(t *testing.T) {
	input := `DataFrame,Origem
clientes_df,data/clientes.csv
`

	result, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Empty(t, rec.FinalTable)
	assert.Empty(t, rec.Transformation)
	assert.Equal(t, "clientes_df", rec.DataFrame)
	assert.Equal(t, []string{colFinalTable, colTransformation}, result.Missing)
}

func TestParse_RaggedRows(t *testing.T) {
	input := `Tabela Final,DataFrame,Origem,Transformação
,clientes_df
,pedidos_df,data/pedidos.csv,read_csv,extra,cells
`

	result, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	require.Len(t, result.Warnings, 2)

	// Short row padded with empty values.
	assert.Equal(t, 2, result.Warnings[0].Row)
	assert.Contains(t, result.Warnings[0].Message, "padding")
	assert.Equal(t, "clientes_df", result.Records[0].DataFrame)
	assert.Empty(t, result.Records[0].Origins)

	// Long row truncated.
	assert.Equal(t, 3, result.Warnings[1].Row)
	assert.Contains(t, result.Warnings[1].Message, "truncating")
	assert.Equal(t, []string{"data/pedidos.csv"}, result.Records[1].Origins)
}

func TestParse_PlaceholderOnlyOrigin(t *testing.T) {
	input := `Tabela Final,DataFrame,Origem,Transformação
,staging_df,—,seed
`

	result, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Records[0].Origins)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParse_HeaderOnly(t *testing.T) {
	result, err := Parse(strings.NewReader("Tabela Final,DataFrame,Origem,Transformação\n"), Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestParseFile(t *testing.T) {
	result, err := ParseFile(filepath.Join("testdata", "data_mapping.csv"), Options{})
	require.NoError(t, err)
	assert.Len(t, result.Records, 11)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Missing)

	last := result.Records[len(result.Records)-1]
	assert.Equal(t, "vw_vendas_cidade", last.DataFrame)
	assert.Equal(t, []string{"analytics.vendas_por_cidade"}, last.Origins)
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "nope.csv"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected wrapped fs.ErrNotExist, got %v", err)
}
