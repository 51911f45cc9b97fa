package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	Advanced          bool // 深度搜索，由调研的 aggressive 模式开启
	IncludeAnswer     bool
	IncludeRawContent bool
	Language          string
}

// Response 通用搜索响应
type Response struct {
	Answer  string
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// Text 返回结果中信息量最大的正文
func (r Result) Text() string {
	if len(r.RawContent) > len(r.Content) {
		return r.RawContent
	}
	return r.Content
}
