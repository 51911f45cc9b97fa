package engine

import (
	"fmt"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// BuildQueries 生成固定模板的调研查询。
// 产品为空时跳过产品类查询，受众为空时跳过受众类查询，最多返回 max 条。
func BuildQueries(req *model.AnalysisRequest, year, max int) []string {
	seg := req.Segmento
	queries := []string{
		fmt.Sprintf("dados reais mercado %s Brasil %d estatísticas crescimento", seg, year),
		fmt.Sprintf("principais empresas %s brasileiras líderes market share", seg),
		fmt.Sprintf("consumidor %s pesquisa comportamento dados demográficos", seg),
		fmt.Sprintf("preços %s Brasil ticket médio benchmarks setor", seg),
	}
	if p := req.Produto; p != "" {
		queries = append(queries,
			fmt.Sprintf("%s demanda Brasil dados consumo estatísticas", p),
			fmt.Sprintf("vendas %s estratégias cases sucesso brasileiros", p),
			fmt.Sprintf("%s investimentos startups funding venture capital", p),
		)
	}
	queries = append(queries,
		fmt.Sprintf("oportunidades %s mercado brasileiro gaps nichos", seg),
		fmt.Sprintf("inovações %s tecnologias emergentes Brasil", seg),
		fmt.Sprintf("regulamentações %s mudanças legais impactos Brasil", seg),
	)
	if a := req.Publico; a != "" {
		queries = append(queries,
			fmt.Sprintf("comportamento de compra %s %s Brasil pesquisa", a, seg),
			fmt.Sprintf("%s hábitos de consumo canais digitais preferidos", a),
		)
	}
	if max > 0 && len(queries) > max {
		queries = queries[:max]
	}
	return queries
}
