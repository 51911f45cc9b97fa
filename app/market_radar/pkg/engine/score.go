package engine

import (
	"reflect"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

var qualitySections = []string{
	model.KeyAvatar,
	model.KeyPositioning,
	model.KeyKeywords,
	model.KeyInsights,
	model.KeyPlan,
	model.KeyMetrics,
}

var completenessSections = append(append([]string(nil), qualitySections...),
	model.KeyTimeline,
	model.KeyMonitoring,
	model.KeyMarketIntelligence,
	model.KeyCompetitors,
)

// QualityScore 质量分，范围 [0, 100]
func QualityScore(doc model.Document) float64 {
	n := 0
	for _, k := range qualitySections {
		if present(doc[k]) {
			n++
		}
	}
	score := min(float64(n)*6.67, 40)

	switch insights := countItems(doc[model.KeyInsights]); {
	case insights >= 15:
		score += 30
	case insights >= 10:
		score += 20
	case insights >= 5:
		score += 10
	}

	if present(doc[model.KeyWebResearch]) {
		score += 15
	}
	if present(doc[model.KeyMarketIntelligence]) {
		score += 15
	}
	return max(0, min(score, 100))
}

// CompletenessScore 完整度百分比，10 个关键段落各占 10%
func CompletenessScore(doc model.Document) float64 {
	n := 0
	for _, k := range completenessSections {
		if present(doc[k]) {
			n++
		}
	}
	return float64(n) / float64(len(completenessSections)) * 100
}

// present 判断段落存在且非空
func present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}

func countItems(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len()
	default:
		return 0
	}
}
