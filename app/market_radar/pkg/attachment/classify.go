package attachment

import "strings"

// 附件内容分类
const (
	TypeCompetitor = "competitor_analysis"
	TypeFinancial  = "financial_data"
	TypeMarket     = "market_research"
	TypeGeneral    = "geral"
)

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{TypeCompetitor, []string{"concorrente", "concorrência", "competidor", "competitor"}},
	{TypeFinancial, []string{"financeiro", "faturamento", "receita", "lucro", "balanço", "fluxo de caixa", "financial", "revenue"}},
	{TypeMarket, []string{"pesquisa de mercado", "mercado", "consumidor", "survey", "market"}},
}

// Classify 根据文件名与内容的关键词判断附件类别，按竞争、财务、市场的顺序匹配
func Classify(filename, content string) string {
	text := strings.ToLower(filename + " " + content)
	for _, c := range categoryKeywords {
		for _, w := range c.words {
			if strings.Contains(text, w) {
				return c.category
			}
		}
	}
	return TypeGeneral
}
