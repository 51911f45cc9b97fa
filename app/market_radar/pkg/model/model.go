package model

import "time"

// Document 分析结果文档，字段为动态 JSON
type Document = map[string]any

// Source 调研来源
type Source struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Snippet       string  `json:"snippet,omitempty"`
	Score         float64 `json:"score,omitempty"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// ResearchSummary 单次调研的汇总内容
type ResearchSummary struct {
	CombinedContent string   `json:"combined_content"`
	KeyInsights     []string `json:"key_insights"`
}

// WebResearch 单条查询的网页调研结果
type WebResearch struct {
	Query           string          `json:"query"`
	Sources         []Source        `json:"sources"`
	ResearchSummary ResearchSummary `json:"research_summary"`
	PagesVisited    int             `json:"pages_visited"`
}

// Attachment 会话内上传并已提取文本的附件
type Attachment struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	Filename         string    `json:"filename"`
	MimeType         string    `json:"mime_type"`
	ContentType      string    `json:"content_type"`
	ExtractedContent string    `json:"extracted_content"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// MarketIntelligence 市场情报
type MarketIntelligence struct {
	MarketSize     string   `json:"market_size"`
	GrowthRate     string   `json:"growth_rate"`
	KeyTrends      []string `json:"key_trends"`
	Opportunities  []string `json:"opportunities"`
	Threats        []string `json:"threats"`
	MarketMaturity string   `json:"market_maturity"`
	EntryBarriers  string   `json:"entry_barriers"`
	SuccessFactors []string `json:"success_factors"`
}

// Competitor 单个竞争者画像
type Competitor struct {
	Nome        string   `json:"nome"`
	MarketShare string   `json:"market_share"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Strategy    string   `json:"strategy"`
}

// CompetitorAnalysis 竞争分析
type CompetitorAnalysis struct {
	DirectCompetitors     []Competitor `json:"direct_competitors"`
	IndirectCompetitors   []string     `json:"indirect_competitors"`
	CompetitiveGaps       []string     `json:"competitive_gaps"`
	MarketPositioning     string       `json:"market_positioning"`
	CompetitiveAdvantages []string     `json:"competitive_advantages"`
}

// AdoptionTimeline 趋势采纳时间线
type AdoptionTimeline struct {
	ShortTerm  string `json:"short_term"`
	MediumTerm string `json:"medium_term"`
	LongTerm   string `json:"long_term"`
}

// TrendAnalysis 趋势分析
type TrendAnalysis struct {
	EmergingTrends    []string         `json:"emerging_trends"`
	DecliningTrends   []string         `json:"declining_trends"`
	FuturePredictions []string         `json:"future_predictions"`
	ImpactAnalysis    string           `json:"impact_analysis"`
	AdoptionTimeline  AdoptionTimeline `json:"adoption_timeline"`
}

// DeepSearchResult 深度搜索结果
type DeepSearchResult struct {
	Query        string    `json:"query"`
	Summary      string    `json:"summary"`
	KeyInsights  []string  `json:"key_insights"`
	Sources      []Source  `json:"sources"`
	PagesVisited int       `json:"pages_visited"`
	GeneratedAt  time.Time `json:"generated_at"`
}
