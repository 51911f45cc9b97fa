package deepsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/research"
)

type fakeResearcher struct {
	available bool
	result    *model.WebResearch
	err       error
	gotCtx    research.Context
}

func (f *fakeResearcher) IsAvailable() bool { return f.available }

func (f *fakeResearcher) NavigateAndResearch(ctx context.Context, query string, rc research.Context, p research.Params) (*model.WebResearch, error) {
	f.gotCtx = rc
	return f.result, f.err
}

type fakeSummarizer struct {
	out string
	err error
}

func (f fakeSummarizer) Summarize(ctx context.Context, query, material string) (string, error) {
	return f.out, f.err
}

func webResult() *model.WebResearch {
	return &model.WebResearch{
		Query:        "fintechs brasil",
		Sources:      []model.Source{{Title: "A", URL: "https://a"}},
		PagesVisited: 4,
		ResearchSummary: model.ResearchSummary{
			CombinedContent: "## A\nconteúdo",
			KeyInsights:     []string{"insight"},
		},
	}
}

func TestPerformDeepSearch(t *testing.T) {
	r := &fakeResearcher{available: true, result: webResult()}
	s := NewService(r, fakeSummarizer{out: "resumo LLM"}, research.Params{MaxPages: 5})

	res, err := s.PerformDeepSearch(context.Background(), "fintechs brasil", map[string]any{"segmento": "fintech", "produto": 3})
	require.NoError(t, err)
	assert.Equal(t, "resumo LLM", res.Summary)
	assert.Equal(t, 4, res.PagesVisited)
	assert.Equal(t, []string{"insight"}, res.KeyInsights)
	assert.Equal(t, research.Context{Segmento: "fintech"}, r.gotCtx)
}

func TestPerformDeepSearch_SummaryFallsBackToExcerpt(t *testing.T) {
	r := &fakeResearcher{available: true, result: webResult()}
	s := NewService(r, fakeSummarizer{err: errors.New("llm down")}, research.Params{})

	res, err := s.PerformDeepSearch(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, "## A\nconteúdo", res.Summary)
}

func TestPerformDeepSearch_Errors(t *testing.T) {
	_, err := NewService(&fakeResearcher{}, nil, research.Params{}).PerformDeepSearch(context.Background(), "q", nil)
	assert.ErrorIs(t, err, research.ErrUnavailable)

	r := &fakeResearcher{available: true, err: errors.New("search failed")}
	_, err = NewService(r, nil, research.Params{}).PerformDeepSearch(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}
