package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/research"
)

// AttachmentSource 会话附件来源
type AttachmentSource interface {
	GetSessionAttachments(sessionID string) []model.Attachment
}

// WebResearcher 网页调研代理
type WebResearcher interface {
	IsAvailable() bool
	NavigateAndResearch(ctx context.Context, query string, rc research.Context, p research.Params) (*model.WebResearch, error)
}

// AttachmentStats 单个附件的简单统计
type AttachmentStats struct {
	ContentLength int      `json:"content_length"`
	WordCount     int      `json:"word_count"`
	Type          string   `json:"type"`
	KeyConcepts   []string `json:"key_concepts"`
}

// AttachmentFile 按类别归组的附件
type AttachmentFile struct {
	Filename string          `json:"filename"`
	Content  string          `json:"content"`
	Analysis AttachmentStats `json:"analysis"`
}

// AttachmentDigest 会话附件汇总
type AttachmentDigest struct {
	Count           int                         `json:"count"`
	CombinedContent string                      `json:"combined_content"`
	TypesAnalysis   map[string][]AttachmentFile `json:"types_analysis"`
	TotalLength     int                         `json:"total_length"`
}

// QueryResult 单条查询的调研结果，Key 形如 query_1
type QueryResult struct {
	Key      string
	Research *model.WebResearch
}

// CollectedResearch 单次请求内收集到的全部资料
type CollectedResearch struct {
	Attachments        Outcome[*AttachmentDigest]
	WebResearch        Outcome[[]QueryResult]
	MarketIntelligence model.MarketIntelligence
	Competitors        model.CompetitorAnalysis
	Trends             model.TrendAnalysis
	Sources            []model.Source
	ResearchIterations int
	TotalContentLength int
	RealDataSources    int
}

// collect 依次收集附件、网页调研与本地启发式结果。
// 协作方失败只记录为不可用，只有 ctx 取消才返回错误。
func (e *Engine) collect(ctx context.Context, req *model.AnalysisRequest) (*CollectedResearch, error) {
	cr := &CollectedResearch{}

	cr.Attachments = e.collectAttachments(req, cr)

	web, err := e.collectWebResearch(ctx, req, cr)
	if err != nil {
		return nil, err
	}
	cr.WebResearch = web

	cr.MarketIntelligence = MarketIntelligence(req.Segmento)
	cr.Competitors = CompetitorAnalysis(req.Segmento)
	cr.Trends = TrendAnalysis(req.Segmento)

	logger.Log.Infof("资料收集完成: %d 字符, %d 个真实来源", cr.TotalContentLength, cr.RealDataSources)
	return cr, nil
}

func (e *Engine) collectAttachments(req *model.AnalysisRequest, cr *CollectedResearch) Outcome[*AttachmentDigest] {
	if req.SessionID == "" {
		return Unavailable[*AttachmentDigest]("no session id")
	}
	if e.deps.Attachments == nil {
		return Unavailable[*AttachmentDigest]("attachment service not configured")
	}
	attachments := e.deps.Attachments.GetSessionAttachments(req.SessionID)
	if len(attachments) == 0 {
		return Unavailable[*AttachmentDigest]("no attachments in session")
	}

	var combined strings.Builder
	types := make(map[string][]AttachmentFile)
	for _, att := range attachments {
		if att.ExtractedContent == "" {
			continue
		}
		content := att.ExtractedContent
		combined.WriteString(content)
		combined.WriteString("\n\n")

		contentType := att.ContentType
		if contentType == "" {
			contentType = "geral"
		}
		types[contentType] = append(types[contentType], AttachmentFile{
			Filename: att.Filename,
			Content:  content,
			Analysis: attachmentStats(content, contentType),
		})
	}

	all := combined.String()
	total := utf8.RuneCountInString(all)
	digest := &AttachmentDigest{
		Count:           len(attachments),
		CombinedContent: clip(all, e.opts.AttachmentLimit),
		TypesAnalysis:   types,
		TotalLength:     total,
	}
	cr.TotalContentLength += total
	cr.RealDataSources += len(attachments)
	logger.Log.Infof("已处理 %d 个附件", len(attachments))
	return Available(digest)
}

func attachmentStats(content, contentType string) AttachmentStats {
	words := strings.Fields(content)
	concepts := words
	if len(concepts) > 10 {
		concepts = concepts[:10]
	}
	return AttachmentStats{
		ContentLength: utf8.RuneCountInString(content),
		WordCount:     len(words),
		Type:          contentType,
		KeyConcepts:   append([]string(nil), concepts...),
	}
}

func (e *Engine) collectWebResearch(ctx context.Context, req *model.AnalysisRequest, cr *CollectedResearch) (Outcome[[]QueryResult], error) {
	if !e.opts.DeepResearch {
		return Unavailable[[]QueryResult]("deep research disabled"), nil
	}
	if e.deps.Research == nil || !e.deps.Research.IsAvailable() {
		return Unavailable[[]QueryResult]("web research agent unavailable"), nil
	}

	queries := BuildQueries(req, e.now().Year(), e.opts.MaxQueries)
	rc := research.Context{Segmento: req.Segmento, Produto: req.Produto, Publico: req.Publico}

	var results []QueryResult
	var failures []string
	for i, q := range queries {
		// 上一次查询结束后停顿 QueryPause
		wait := e.opts.QueryPause
		if i == 0 {
			wait = 0
		}
		if err := pause(ctx, wait); err != nil {
			return Outcome[[]QueryResult]{}, err
		}
		key := fmt.Sprintf("query_%d", i+1)
		logger.Log.Infof("调研查询 %d/%d: %s", i+1, len(queries), q)

		wr, err := e.deps.Research.NavigateAndResearch(ctx, q, rc, e.opts.Research)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Outcome[[]QueryResult]{}, ctxErr
			}
			logger.Log.Warnf("调研查询失败 [%s]: %v", q, err)
			failures = append(failures, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		if wr == nil {
			failures = append(failures, key+": empty result")
			continue
		}

		results = append(results, QueryResult{Key: key, Research: wr})
		cr.Sources = append(cr.Sources, wr.Sources...)
		cr.ResearchIterations++
		cr.RealDataSources += len(wr.Sources)
		cr.TotalContentLength += utf8.RuneCountInString(wr.ResearchSummary.CombinedContent)
	}

	logger.Log.Infof("网页调研完成: %d/%d 条查询成功, %d 个来源", len(results), len(queries), len(cr.Sources))
	if len(results) == 0 {
		return Unavailable[[]QueryResult](fmt.Sprintf("all %d queries failed: %s", len(queries), strings.Join(failures, "; "))), nil
	}
	out := Available(results)
	out.Reason = strings.Join(failures, "; ")
	return out, nil
}

// clip 按字符数截断
func clip(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// pause 等待 d，ctx 取消时提前返回
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
