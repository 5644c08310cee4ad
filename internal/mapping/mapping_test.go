package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{"single origin", "clientes_df", []string{"clientes_df"}},
		{"multiple origins", "clientes_df, enderecos_df", []string{"clientes_df", "enderecos_df"}},
		{"untrimmed tokens", "  pedidos_df ,  itens_df  ", []string{"pedidos_df", "itens_df"}},
		{"blank tokens dropped", "a_df, , b_df,", []string{"a_df", "b_df"}},
		{"placeholder em-dash", "—", nil},
		{"placeholder dash", "-", nil},
		{"placeholder among origins", "a_df, —, b_df", []string{"a_df", "b_df"}},
		{"empty field", "", nil},
		{"path origin", "data/clientes.csv", []string{"data/clientes.csv"}},
		{"order preserved", "z_df, a_df, m_df", []string{"z_df", "a_df", "m_df"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitOrigins(tt.field, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitOrigins_CustomPlaceholders(t *testing.T) {
	got := SplitOrigins("a_df, n/a, b_df", []string{"n/a"})
	assert.Equal(t, []string{"a_df", "b_df"}, got)

	// Custom placeholders replace the defaults entirely.
	got = SplitOrigins("—", []string{"n/a"})
	assert.Equal(t, []string{"—"}, got)
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder("-", nil))
	assert.True(t, IsPlaceholder("—", nil))
	assert.False(t, IsPlaceholder("", nil))
	assert.False(t, IsPlaceholder("join", nil))
	assert.True(t, IsPlaceholder("n/a", []string{"n/a"}))
	assert.False(t, IsPlaceholder("-", []string{"n/a"}))
}
