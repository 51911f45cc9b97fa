package engine

import (
	"maps"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// consolidate 合并 AI 输出与收集到的资料为最终文档。
// 主 LLM 输出（或其替代模板）作为基础，缺失时使用基础分析。
func consolidate(req *model.AnalysisRequest, cr *CollectedResearch, ai *AIAnalysisSet) model.Document {
	doc := model.Document{}
	if ai.Primary.Value != nil {
		maps.Copy(doc, ai.Primary.Value)
	} else {
		maps.Copy(doc, basicAnalysis(req))
	}

	if cr.WebResearch.OK {
		web := make(map[string]*model.WebResearch, len(cr.WebResearch.Value))
		for _, qr := range cr.WebResearch.Value {
			web[qr.Key] = qr.Research
		}
		doc[model.KeyWebResearch] = web
	}

	doc[model.KeyMarketIntelligence] = cr.MarketIntelligence
	doc[model.KeyCompetitors] = cr.Competitors
	doc[model.KeyTrends] = cr.Trends
	doc[model.KeyInsights] = exclusiveInsights(cr, ai.Count())
	doc[model.KeyPlan] = implementationPlan(req)
	doc[model.KeyMetrics] = successMetrics(req)
	doc[model.KeyTimeline] = timeline(req)
	doc[model.KeyMonitoring] = monitoringSystem(req)

	if ai.Cross.OK {
		doc[model.KeyCrossAnalysis] = ai.Cross.Value
	}
	if ai.Secondary.OK {
		doc[model.KeySecondaryOpinion] = obj{"analysis": ai.Secondary.Value}
	}
	return doc
}
