package data

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/biz"
)

var recordColumnNames = []string{
	"id", "nicho", "produto", "descricao", "preco", "publico", "concorrentes", "dados_adicionais",
	"objetivo_receita", "orcamento_marketing", "prazo_lancamento", "status", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (biz.AnalysisRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnalysisRepo(&Data{db: db}, log.DefaultLogger), mock
}

func TestListAnalyses_SegmentIsLiteralSubstring(t *testing.T) {
	tests := []struct {
		name     string
		segmento string
	}{
		{name: "percent", segmento: "%"},
		{name: "underscore", segmento: "a_b"},
		{name: "plain", segmento: "Moda"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
			rows := sqlmock.NewRows(recordColumnNames).
				AddRow(int64(7), "moda praia", "biquínis", nil, 120.5, nil, nil, nil, nil, nil, nil, "completed", now, now)

			mock.ExpectQuery(regexp.QuoteMeta(`WHERE $1 = '' OR strpos(lower(nicho), lower($1)) > 0`)).
				WithArgs(tt.segmento, 20, 0).
				WillReturnRows(rows)

			list, err := repo.ListAnalyses(context.Background(), biz.ListFilter{Segmento: tt.segmento, Limit: 20})
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, int64(7), list[0].ID)
			assert.Equal(t, "moda praia", list[0].Nicho)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListAnalysesQuery_NoPatternMatching(t *testing.T) {
	assert.NotContains(t, listAnalysesQuery, "LIKE")
	assert.Contains(t, listAnalysesQuery, "strpos(lower(nicho), lower($1))")
}
