package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/biz"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

const recordColumns = `id, nicho, produto, descricao, preco, publico, concorrentes, dados_adicionais,
	objetivo_receita, orcamento_marketing, prazo_lancamento, status, created_at, updated_at`

// listAnalysesQuery 按 segmento 做不区分大小写的子串匹配，% 与 _ 按字面处理
const listAnalysesQuery = `
		SELECT ` + recordColumns + `
		FROM analyses
		WHERE $1 = '' OR strpos(lower(nicho), lower($1)) > 0
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) biz.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) Available() bool {
	return r.data.Available()
}

func (r *analysisRepo) CreateAnalysis(ctx context.Context, rec *biz.AnalysisRecord) (int64, error) {
	if !r.Available() {
		return 0, errors.New("database unavailable")
	}

	sections := []any{
		rec.Analysis,
		rec.Analysis[model.KeyAvatar],
		rec.Analysis[model.KeyPositioning],
		rec.Analysis[model.KeyCompetitors],
		rec.Analysis[model.KeyKeywords],
		rec.Analysis[model.KeyMetrics],
	}
	encoded := make([]any, len(sections))
	for i, s := range sections {
		b, err := jsonb(s)
		if err != nil {
			return 0, fmt.Errorf("encode analysis: %w", err)
		}
		encoded[i] = string(b)
	}

	status := rec.Status
	if status == "" {
		status = "completed"
	}

	var id int64
	err := r.data.db.QueryRowContext(ctx, `
		INSERT INTO analyses (
			nicho, produto, descricao, preco, publico, concorrentes, dados_adicionais,
			objetivo_receita, orcamento_marketing, prazo_lancamento,
			comprehensive_analysis, avatar_data, positioning_data, competition_data, marketing_data, metrics_data,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		cleanText(rec.Nicho), nullText(rec.Produto), nullText(rec.Descricao), rec.Preco,
		nullText(rec.Publico), nullText(rec.Concorrentes), nullText(rec.DadosAdicionais),
		rec.ObjetivoReceita, rec.OrcamentoMarketing, nullText(rec.PrazoLancamento),
		encoded[0], encoded[1], encoded[2], encoded[3], encoded[4], encoded[5],
		status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

func (r *analysisRepo) GetAnalysis(ctx context.Context, id int64) (*biz.AnalysisRecord, error) {
	if !r.Available() {
		return nil, biz.ErrAnalysisNotFound
	}

	var raw []byte
	row := r.data.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+`, comprehensive_analysis FROM analyses WHERE id = $1`, id)
	rec, err := scanRecord(row, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, biz.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rec.Analysis); err != nil {
			r.log.WithContext(ctx).Warnf("分析 %d 的 JSON 无法解析: %v", id, err)
		}
	}
	return rec, nil
}

func (r *analysisRepo) ListAnalyses(ctx context.Context, f biz.ListFilter) ([]*biz.AnalysisRecord, error) {
	if !r.Available() {
		return nil, nil
	}

	rows, err := r.data.db.QueryContext(ctx, listAnalysesQuery, f.Segmento, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	list := make([]*biz.AnalysisRecord, 0, f.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *analysisRepo) GetStats(ctx context.Context) (*biz.AnalysisStats, error) {
	if !r.Available() {
		return &biz.AnalysisStats{}, nil
	}

	stats := &biz.AnalysisStats{DatabaseAvailable: true}
	err := r.data.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
			COALESCE(AVG(preco), 0)
		FROM analyses`,
	).Scan(&stats.TotalAnalyses, &stats.CompletedAnalyses, &stats.AnalysesLast7Days, &stats.AveragePrice)
	if err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT nicho, COUNT(*) AS total
		FROM analyses
		GROUP BY nicho
		ORDER BY total DESC, nicho
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("top segments: %w", err)
	}
	defer rows.Close()

	stats.TopSegments = []biz.SegmentCount{}
	for rows.Next() {
		var sc biz.SegmentCount
		if err := rows.Scan(&sc.Nicho, &sc.Count); err != nil {
			return nil, err
		}
		stats.TopSegments = append(stats.TopSegments, sc)
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, extra ...any) (*biz.AnalysisRecord, error) {
	var (
		rec                       biz.AnalysisRecord
		produto, descricao        sql.NullString
		publico, conc, dados      sql.NullString
		prazo                     sql.NullString
		preco, receita, orcamento sql.NullFloat64
	)
	dest := []any{
		&rec.ID, &rec.Nicho, &produto, &descricao, &preco, &publico, &conc, &dados,
		&receita, &orcamento, &prazo, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	rec.Produto = produto.String
	rec.Descricao = descricao.String
	rec.Publico = publico.String
	rec.Concorrentes = conc.String
	rec.DadosAdicionais = dados.String
	rec.PrazoLancamento = prazo.String
	rec.Preco = floatPtr(preco)
	rec.ObjetivoReceita = floatPtr(receita)
	rec.OrcamentoMarketing = floatPtr(orcamento)
	return &rec, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
