package model

// 分析文档的顶层字段
const (
	KeyAvatar             = "avatar_ultra_detalhado"
	KeyPositioning        = "escopo_posicionamento"
	KeyKeywords           = "estrategia_palavras_chave"
	KeyWebResearch        = "pesquisa_web_detalhada"
	KeyMarketIntelligence = "inteligencia_mercado"
	KeyCompetitors        = "analise_concorrencia"
	KeyTrends             = "analise_tendencias"
	KeyInsights           = "insights_exclusivos"
	KeyPlan               = "plano_implementacao"
	KeyMetrics            = "metricas_sucesso"
	KeyTimeline           = "cronograma_365_dias"
	KeyMonitoring         = "sistema_monitoramento"
	KeyCrossAnalysis      = "analise_cruzada"
	KeySecondaryOpinion   = "analise_complementar"
	KeyMetadata           = "metadata"
	KeyDatabaseID         = "database_id"
	KeyError              = "error"
)
