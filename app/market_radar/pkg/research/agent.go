package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/search"
)

// ErrUnavailable 未配置搜索服务
var ErrUnavailable = errors.New("web research agent unavailable")

const (
	minSnippetLen = 500
	minPageLen    = 100
	maxInsights   = 10
)

// Context 调研上下文
type Context struct {
	Segmento string
	Produto  string
	Publico  string
}

// Params 单次调研的范围
type Params struct {
	MaxPages   int
	Depth      int
	Aggressive bool
}

// FetchFunc 抓取并清洗网页正文
type FetchFunc func(ctx context.Context, url string) (string, error)

// Agent 网页调研代理：搜索，必要时抓取正文，汇总成 WebResearch
type Agent struct {
	searcher  search.Searcher
	fetch     FetchFunc
	pageLimit int
	language  string
}

// Option Agent 可选项
type Option func(*Agent)

// WithFetcher 替换网页抓取实现
func WithFetcher(f FetchFunc) Option {
	return func(a *Agent) { a.fetch = f }
}

// WithPageLimit 设置单页正文的最大字符数
func WithPageLimit(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.pageLimit = n
		}
	}
}

// WithLanguage 设置搜索语言
func WithLanguage(lang string) Option {
	return func(a *Agent) { a.language = lang }
}

// NewAgent 创建调研代理，searcher 为 nil 时代理不可用
func NewAgent(searcher search.Searcher, pageTimeout time.Duration, opts ...Option) *Agent {
	a := &Agent{
		searcher:  searcher,
		fetch:     ReadabilityFetcher(pageTimeout),
		pageLimit: 5000,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// IsAvailable 是否可以执行调研
func (a *Agent) IsAvailable() bool {
	return a != nil && a.searcher != nil
}

// NavigateAndResearch 针对一条查询执行搜索与抓取
func (a *Agent) NavigateAndResearch(ctx context.Context, query string, rc Context, p Params) (*model.WebResearch, error) {
	if !a.IsAvailable() {
		return nil, ErrUnavailable
	}

	resp, err := a.searcher.Search(ctx, &search.Request{
		Query:             query,
		Topic:             "general",
		MaxResults:        p.MaxPages,
		Advanced:          p.Aggressive,
		IncludeAnswer:     true,
		IncludeRawContent: p.Depth > 2,
		Language:          a.language,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	result := &model.WebResearch{Query: query, Sources: make([]model.Source, 0, len(resp.Results))}
	var sections []string
	for _, item := range resp.Results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content := item.Text()
		// 摘要过短时抓取原文，depth 为 1 时只用搜索摘要
		if len(content) < minSnippetLen && p.Depth > 1 && item.URL != "" {
			fetched, err := a.fetch(ctx, item.URL)
			if err != nil {
				logger.Log.Debugf("抓取网页失败 [%s]: %v", item.URL, err)
			} else if len(fetched) > len(content) {
				content = fetched
			}
		}
		result.PagesVisited++
		content = truncate(content, a.pageLimit)

		result.Sources = append(result.Sources, model.Source{
			Title:         item.Title,
			URL:           item.URL,
			Snippet:       truncate(item.Content, 300),
			Score:         item.Score,
			PublishedDate: item.PublishedDate,
		})
		if len(content) >= minPageLen {
			sections = append(sections, fmt.Sprintf("## %s\nFonte: %s\n\n%s", item.Title, item.URL, content))
		}
	}

	result.ResearchSummary = model.ResearchSummary{
		CombinedContent: strings.Join(sections, "\n\n"),
		KeyInsights:     keyInsights(resp, rc),
	}
	return result, nil
}

// ReadabilityFetcher 基于 go-readability 抓取正文并转为 markdown
func ReadabilityFetcher(timeout time.Duration) FetchFunc {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	conv := md.NewConverter("", true, nil)
	return func(ctx context.Context, url string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		article, err := readability.FromURL(url, timeout)
		if err != nil {
			return "", err
		}
		text, err := conv.ConvertString(article.Content)
		if err != nil || strings.TrimSpace(text) == "" {
			return article.TextContent, nil
		}
		return text, nil
	}
}

func keyInsights(resp *search.Response, rc Context) []string {
	insights := make([]string, 0, maxInsights)
	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		insights = append(insights, answer)
	}
	for _, item := range resp.Results {
		if len(insights) >= maxInsights {
			break
		}
		sentence := firstSentence(item.Content)
		if sentence == "" {
			continue
		}
		if rc.Segmento != "" && !strings.Contains(strings.ToLower(item.Title+" "+sentence), strings.ToLower(rc.Segmento)) {
			sentence = item.Title + ": " + sentence
		}
		insights = append(insights, sentence)
	}
	return insights
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".!?"); i > 0 {
		s = s[:i+1]
	}
	return truncate(s, 240)
}

// truncate 按字节截断，回退到 UTF-8 字符边界
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
