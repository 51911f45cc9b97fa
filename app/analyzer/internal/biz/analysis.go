package biz

import (
	"context"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

// ErrAnalysisNotFound 分析记录不存在或存储不可用
var ErrAnalysisNotFound = errors.New("analysis not found")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalysisRecord 持久化的分析记录
type AnalysisRecord struct {
	ID                 int64          `json:"id"`
	Nicho              string         `json:"nicho"`
	Produto            string         `json:"produto,omitempty"`
	Descricao          string         `json:"descricao,omitempty"`
	Preco              *float64       `json:"preco"`
	Publico            string         `json:"publico,omitempty"`
	Concorrentes       string         `json:"concorrentes,omitempty"`
	DadosAdicionais    string         `json:"dados_adicionais,omitempty"`
	ObjetivoReceita    *float64       `json:"objetivo_receita"`
	OrcamentoMarketing *float64       `json:"orcamento_marketing"`
	PrazoLancamento    string         `json:"prazo_lancamento,omitempty"`
	Analysis           model.Document `json:"comprehensive_analysis,omitempty"`
	Status             string         `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// SegmentCount 按细分市场聚合的数量
type SegmentCount struct {
	Nicho string `json:"nicho"`
	Count int64  `json:"count"`
}

// AnalysisStats 存储统计
type AnalysisStats struct {
	DatabaseAvailable bool           `json:"database_available"`
	TotalAnalyses     int64          `json:"total_analyses"`
	CompletedAnalyses int64          `json:"completed_analyses"`
	AnalysesLast7Days int64          `json:"analyses_last_7_days"`
	AveragePrice      float64        `json:"average_price"`
	TopSegments       []SegmentCount `json:"top_segments"`
}

// ListFilter 列表查询条件，Segmento 为空时不过滤
type ListFilter struct {
	Limit    int
	Offset   int
	Segmento string
}

// AnalysisRepo 分析记录仓库
type AnalysisRepo interface {
	Available() bool
	CreateAnalysis(ctx context.Context, rec *AnalysisRecord) (int64, error)
	GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error)
	ListAnalyses(ctx context.Context, f ListFilter) ([]*AnalysisRecord, error)
	GetStats(ctx context.Context) (*AnalysisStats, error)
}

// Analyzer 分析引擎
type Analyzer interface {
	Analyze(ctx context.Context, req *model.AnalysisRequest) model.Document
}

// AnalysisUseCase 分析用例：校验、执行、持久化
type AnalysisUseCase struct {
	analyzer Analyzer
	repo     AnalysisRepo
	log      *log.Helper
}

func NewAnalysisUseCase(analyzer Analyzer, repo AnalysisRepo, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{analyzer: analyzer, repo: repo, log: log.NewHelper(logger)}
}

// Analyze 校验请求并执行分析。持久化失败只记录日志，不影响返回的文档。
func (uc *AnalysisUseCase) Analyze(ctx context.Context, raw map[string]any) (model.Document, error) {
	req, err := model.ParseAnalysisRequest(raw)
	if err != nil {
		return nil, err
	}
	uc.log.WithContext(ctx).Infof("开始分析: %s", req.Segmento)

	doc := uc.analyzer.Analyze(ctx, req)

	if _, failed := doc[model.KeyError]; failed {
		return doc, nil
	}
	if !uc.repo.Available() {
		uc.log.WithContext(ctx).Info("数据库不可用，分析结果不保存")
		return doc, nil
	}
	id, err := uc.repo.CreateAnalysis(ctx, recordFrom(req, doc))
	if err != nil {
		uc.log.WithContext(ctx).Warnf("保存分析失败: %v", err)
		return doc, nil
	}
	doc[model.KeyDatabaseID] = id
	uc.log.WithContext(ctx).Infof("分析已保存, id=%d", id)
	return doc, nil
}

// List 分页列出分析记录，返回实际使用的 limit 与 offset
func (uc *AnalysisUseCase) List(ctx context.Context, f ListFilter) ([]*AnalysisRecord, ListFilter, error) {
	f = NormalizeFilter(f)
	if !uc.repo.Available() {
		return []*AnalysisRecord{}, f, nil
	}
	list, err := uc.repo.ListAnalyses(ctx, f)
	if err != nil {
		return nil, f, err
	}
	if list == nil {
		list = []*AnalysisRecord{}
	}
	return list, f, nil
}

// Get 获取单条分析记录
func (uc *AnalysisUseCase) Get(ctx context.Context, id int64) (*AnalysisRecord, error) {
	if !uc.repo.Available() {
		return nil, ErrAnalysisNotFound
	}
	return uc.repo.GetAnalysis(ctx, id)
}

// Stats 存储统计，存储不可用时只返回 database_available=false
func (uc *AnalysisUseCase) Stats(ctx context.Context) (*AnalysisStats, error) {
	if !uc.repo.Available() {
		return &AnalysisStats{DatabaseAvailable: false}, nil
	}
	return uc.repo.GetStats(ctx)
}

// NormalizeFilter limit 默认 20、上限 100，offset 不小于 0
func NormalizeFilter(f ListFilter) ListFilter {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func recordFrom(req *model.AnalysisRequest, doc model.Document) *AnalysisRecord {
	return &AnalysisRecord{
		Nicho:              req.Segmento,
		Produto:            req.Produto,
		Descricao:          req.DadosAdicionais,
		Preco:              req.Preco.Ptr(),
		Publico:            req.Publico,
		Concorrentes:       req.Concorrentes,
		DadosAdicionais:    req.DadosAdicionais,
		ObjetivoReceita:    req.ObjetivoReceita.Ptr(),
		OrcamentoMarketing: req.OrcamentoMarketing.Ptr(),
		PrazoLancamento:    req.PrazoLancamento,
		Analysis:           doc,
		Status:             "completed",
	}
}
