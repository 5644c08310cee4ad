package lineage

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		finalTable string
		want       NodeType
	}{
		// Final-table match wins over every convention.
		{"vendas_por_cidade", "vendas_por_cidade", TypeFinalTable},
		{"relatorio_df", "relatorio_df", TypeFinalTable},
		{"data/out.csv", "data/out.csv", TypeFinalTable},

		// Dataframe naming conventions.
		{"pedidos_df", "", TypeDataFrame},
		{"df_pedidos", "", TypeDataFrame},
		{"fato_vendas", "", TypeDataFrame},
		{"vw_vendas_cidade", "", TypeDataFrame},
		{"fato_vendas_df", "vendas_por_cidade", TypeDataFrame},

		// Path-like names are files.
		{"data/clientes.csv", "", TypeFile},
		{"exports/clientes", "", TypeFile},
		{"clientes.csv", "", TypeFile},
		{"clientes.parquet", "", TypeFile},

		// Schema-qualified names are tables.
		{"analytics.pedidos", "", TypeTable},
		{"dw.stg.clientes", "", TypeTable},

		// Everything else defaults to a dataframe.
		{"pedidos", "", TypeDataFrame},
		{"clientes_staging", "", TypeDataFrame},
	}

	for _, tt := range tests {
		got := Classify(tt.name, tt.finalTable)
		if got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.name, tt.finalTable, got, tt.want)
		}
	}
}

func TestClassify_RuleOrder(t *testing.T) {
	// A name that is both path-like and dotted resolves by the earlier rule.
	if got := Classify("data/stg.clientes.csv", ""); got != TypeFile {
		t.Errorf("expected path-like rule to win, got %q", got)
	}
	// Dataframe conventions beat path-like checks.
	if got := Classify("data/fato_vendas", ""); got != TypeDataFrame {
		t.Errorf("expected dataframe rule to win, got %q", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	names := []string{"pedidos_df", "data/x.csv", "a.b", "plain", "vw_x"}
	for _, name := range names {
		first := Classify(name, "final")
		second := Classify(name, "final")
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %q then %q", name, first, second)
		}
	}
}
