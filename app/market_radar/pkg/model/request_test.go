package model

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisRequest(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr error
	}{
		{name: "empty body", raw: nil, wantErr: ErrEmptyBody},
		{name: "missing segmento", raw: map[string]any{"produto": "curso"}, wantErr: ErrMissingSegment},
		{name: "blank segmento", raw: map[string]any{"segmento": "   "}, wantErr: ErrMissingSegment},
		{name: "valid", raw: map[string]any{"segmento": "moda"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseAnalysisRequest(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "moda", req.Segmento)
		})
	}
}

func TestParseAnalysisRequest_NumericCoercion(t *testing.T) {
	req, err := ParseAnalysisRequest(map[string]any{
		"segmento":            "moda",
		"objetivo_receita":    "50000,50",
		"preco":               "caro",
		"orcamento_marketing": 15000.0,
	})
	require.NoError(t, err)

	assert.Equal(t, Amount{Value: 50000.5, Set: true}, req.ObjetivoReceita)
	assert.Equal(t, Amount{Value: 0, Set: true}, req.Preco)
	assert.Equal(t, 15000.0, req.OrcamentoMarketing.Or(20000))
	assert.Equal(t, 0.0, req.Preco.Or(2500))
}

func TestParseAnalysisRequest_AbsentNumbersUseDefaults(t *testing.T) {
	req, err := ParseAnalysisRequest(map[string]any{"segmento": "moda", "preco": ""})
	require.NoError(t, err)

	assert.False(t, req.Preco.Set)
	assert.Nil(t, req.Preco.Ptr())
	assert.Equal(t, 2500.0, req.Preco.Or(2500))
	assert.Equal(t, 100000.0, req.ObjetivoReceita.Or(100000))
}

func TestParseAnalysisRequest_StringFields(t *testing.T) {
	req, err := ParseAnalysisRequest(map[string]any{
		"segmento":         "saúde digital",
		"produto":          "app",
		"publico":          "médicos",
		"prazo_lancamento": 90.0,
		"session_id":       "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "app", req.Produto)
	assert.Equal(t, "médicos", req.Publico)
	assert.Equal(t, "90", req.PrazoLancamento)
	assert.Equal(t, "abc", req.SessionID)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1234.5, ParseAmount("1234,5"))
	assert.Equal(t, 10.0, ParseAmount(10))
	assert.Equal(t, 0.0, ParseAmount("1.000,50"))
	assert.Equal(t, 0.0, ParseAmount([]string{"x"}))
}

func TestParseAmount_NonFinite(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{in: "NaN", want: 0},
		{in: "Inf", want: 0},
		{in: "-inf", want: 0},
		{in: "infinity", want: 0},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
		{in: "1e20", want: 1e20},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}
