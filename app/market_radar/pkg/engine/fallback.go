package engine

import (
	"time"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// Fallback 在流程无法完成时生成的应急文档，总是返回完整结构
func Fallback(req *model.AnalysisRequest, err error) model.Document {
	if req == nil {
		req = &model.AnalysisRequest{}
	}
	errText := "unknown error"
	if err != nil {
		errText = err.Error()
	}

	doc := basicAnalysis(req)
	doc[model.KeyInsights] = emergencyInsights(req, errText)
	doc[model.KeyMetadata] = obj{
		"processing_time_seconds": 0,
		"analysis_engine":         "Emergency Fallback",
		"generated_at":            time.Now().UTC().Format(time.RFC3339),
		"quality_score":           35.0,
		"completeness_score":      25.0,
		"error":                   errText,
		"recommendation":          "Execute nova análise com todas as APIs configuradas para resultados REAIS completos",
		"real_data_guarantee":     false,
		"emergency_mode":          true,
	}
	return doc
}
