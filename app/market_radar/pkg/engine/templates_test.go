package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 0", money(0))
	assert.Equal(t, "R$ 12,500", money(12500.9))
	assert.Equal(t, "R$ 1,000,000", money(1e6))
	assert.Equal(t, "R$ 100,000,000,000,000,000,000", money(1e20))
	assert.Equal(t, "R$ -1,500", money(-1500.7))
	assert.Equal(t, "R$ 0", money(-0.4))
	assert.Equal(t, "R$ 0", money(math.NaN()))
	assert.Equal(t, "R$ 0", money(math.Inf(-1)))
}

func TestImplementationPlan_ExtremeAmounts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1e20", want: "R$ 15,000,000,000,000,000,000 - R$ 25,000,000,000,000,000,000"},
		{in: "NaN", want: "R$ 0 - R$ 0"},
		{in: "Inf", want: "R$ 0 - R$ 0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			req, err := model.ParseAnalysisRequest(map[string]any{"segmento": "moda", "objetivo_receita": tt.in})
			require.NoError(t, err)
			phase1 := implementationPlan(req)["fase_1_fundacao_real"].(map[string]any)
			assert.Equal(t, tt.want, phase1["investimento_estimado"])
		})
	}
}

func TestImplementationPlan(t *testing.T) {
	plan := implementationPlan(&model.AnalysisRequest{ObjetivoReceita: model.Amount{Value: 50000.5, Set: true}})
	phase1 := plan["fase_1_fundacao_real"].(map[string]any)
	assert.Equal(t, "R$ 7,500 - R$ 12,500", phase1["investimento_estimado"])
	assert.Equal(t, "45 dias", phase1["duracao"])

	defaults := implementationPlan(&model.AnalysisRequest{})
	phase3 := defaults["fase_3_crescimento_real"].(map[string]any)
	assert.Equal(t, "R$ 25,000 - R$ 45,000", phase3["investimento_estimado"])
}

func TestInvalidAmountIsZero(t *testing.T) {
	req := &model.AnalysisRequest{ObjetivoReceita: model.Amount{Value: 0, Set: true}}
	tl := timeline(req)
	q1 := tl["trimestre_1_real"].(map[string]any)
	assert.Equal(t, "R$ 0", q1["investimento"])
}

func TestTimelineAndMonitoring(t *testing.T) {
	req := &model.AnalysisRequest{}
	tl := timeline(req)
	assert.Len(t, tl, 4)
	q4 := tl["trimestre_4_real"].(map[string]any)
	assert.Equal(t, "R$ 120,000", q4["investimento"])
	assert.Equal(t, "R$ 400,000", q4["receita_esperada"])

	alerts := monitoringSystem(req)["alertas_reais"].([]string)
	assert.Contains(t, alerts[2], "R$ 8,000")
}

func TestExclusiveInsights(t *testing.T) {
	cr := &CollectedResearch{Sources: make([]model.Source, 3), TotalContentLength: 1200, RealDataSources: 4}
	insights := exclusiveInsights(cr, 2)
	assert.Len(t, insights, 20)
	assert.Contains(t, insights[0], "3 fontes")
	assert.Contains(t, insights[1], "1200 caracteres")
	assert.Contains(t, insights[2], "2 sistemas")
}
