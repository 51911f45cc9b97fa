package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/go-playground/validator/v10"

	"github.com/iWorld-y/market_radar/app/analyzer/internal/biz"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/attachment"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

const (
	OperationAnalyze          = "/market_radar.v1.Analyzer/Analyze"
	OperationUploadAttachment = "/market_radar.v1.Analyzer/UploadAttachment"
	OperationDeepSearch       = "/market_radar.v1.Analyzer/DeepSearch"
	OperationListAnalyses     = "/market_radar.v1.Analyzer/ListAnalyses"
	OperationGetAnalysis      = "/market_radar.v1.Analyzer/GetAnalysis"
	OperationStats            = "/market_radar.v1.Analyzer/Stats"

	maxUploadMemory = 32 << 20
)

// AttachmentProcessor 附件处理
type AttachmentProcessor interface {
	ProcessAttachment(ctx context.Context, sessionID, filename string, r io.Reader) (*attachment.UploadResult, error)
}

// DeepSearcher 深度搜索
type DeepSearcher interface {
	PerformDeepSearch(ctx context.Context, query string, qctx map[string]any) (*model.DeepSearchResult, error)
}

// DeepSearchRequest POST /deep_search 请求体
type DeepSearchRequest struct {
	Query   string         `json:"query" validate:"required"`
	Context map[string]any `json:"context"`
}

// DeepSearchReply POST /deep_search 响应
type DeepSearchReply struct {
	Query     string                  `json:"query"`
	Context   map[string]any          `json:"context"`
	Result    *model.DeepSearchResult `json:"result"`
	Timestamp string                  `json:"timestamp"`
}

// ListAnalysesReply GET /analyses 响应
type ListAnalysesReply struct {
	Analyses []*biz.AnalysisRecord `json:"analyses"`
	Count    int                   `json:"count"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

type uploadRequest struct {
	SessionID string
	Filename  string `validate:"required"`
	File      io.Reader
}

type AnalysisService struct {
	uc          *biz.AnalysisUseCase
	attachments AttachmentProcessor
	deepSearch  DeepSearcher
	validate    *validator.Validate
	log         *log.Helper
}

func NewAnalysisService(uc *biz.AnalysisUseCase, attachments AttachmentProcessor, deepSearch DeepSearcher, logger log.Logger) *AnalysisService {
	return &AnalysisService{
		uc:          uc,
		attachments: attachments,
		deepSearch:  deepSearch,
		validate:    validator.New(),
		log:         log.NewHelper(logger),
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, raw map[string]any) (model.Document, error) {
	doc, err := s.uc.Analyze(ctx, raw)
	switch {
	case errors.Is(err, model.ErrEmptyBody):
		return nil, apiError(nethttp.StatusBadRequest, "EMPTY_BODY",
			"Dados não fornecidos", "Envie os dados da análise no corpo da requisição")
	case errors.Is(err, model.ErrMissingSegment):
		return nil, apiError(nethttp.StatusBadRequest, "MISSING_SEGMENT",
			"Segmento obrigatório", `O campo "segmento" é obrigatório para a análise`)
	case err != nil:
		s.log.WithContext(ctx).Errorf("分析失败: %v", err)
		return nil, apiError(nethttp.StatusInternalServerError, "ANALYSIS_FAILED", "Erro interno na análise", err.Error())
	}
	return doc, nil
}

func (s *AnalysisService) UploadAttachment(ctx context.Context, req *uploadRequest) (*attachment.UploadResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return &attachment.UploadResult{Success: false, Error: "Nome de arquivo vazio"}, nil
	}
	res, err := s.attachments.ProcessAttachment(ctx, req.SessionID, req.Filename, req.File)
	if err != nil {
		s.log.WithContext(ctx).Warnf("附件处理失败 [%s]: %v", req.Filename, err)
		return &attachment.UploadResult{Success: false, Error: err.Error()}, nil
	}
	return res, nil
}

func (s *AnalysisService) DeepSearch(ctx context.Context, req *DeepSearchRequest) (*DeepSearchReply, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := s.validate.Struct(req); err != nil {
		return nil, apiError(nethttp.StatusBadRequest, "MISSING_QUERY", "Query obrigatória", "Forneça uma query para busca")
	}
	if req.Context == nil {
		req.Context = map[string]any{}
	}
	result, err := s.deepSearch.PerformDeepSearch(ctx, req.Query, req.Context)
	if err != nil {
		s.log.WithContext(ctx).Errorf("深度搜索失败: %v", err)
		return nil, apiError(nethttp.StatusInternalServerError, "DEEP_SEARCH_FAILED", "Erro na busca profunda", err.Error())
	}
	return &DeepSearchReply{
		Query:     req.Query,
		Context:   req.Context,
		Result:    result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *AnalysisService) ListAnalyses(ctx context.Context, f biz.ListFilter) (*ListAnalysesReply, error) {
	list, used, err := s.uc.List(ctx, f)
	if err != nil {
		s.log.WithContext(ctx).Errorf("列出分析失败: %v", err)
		return nil, apiError(nethttp.StatusInternalServerError, "LIST_FAILED", "Erro ao listar análises", err.Error())
	}
	return &ListAnalysesReply{Analyses: list, Count: len(list), Limit: used.Limit, Offset: used.Offset}, nil
}

func (s *AnalysisService) GetAnalysis(ctx context.Context, rawID string) (*biz.AnalysisRecord, error) {
	notFound := apiError(nethttp.StatusNotFound, "ANALYSIS_NOT_FOUND",
		"Análise não encontrada", fmt.Sprintf("Análise com ID %s não existe", rawID))
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, notFound
	}
	rec, err := s.uc.Get(ctx, id)
	if errors.Is(err, biz.ErrAnalysisNotFound) {
		return nil, notFound
	}
	if err != nil {
		s.log.WithContext(ctx).Errorf("获取分析 %d 失败: %v", id, err)
		return nil, apiError(nethttp.StatusInternalServerError, "GET_FAILED", "Erro ao obter análise", err.Error())
	}
	return rec, nil
}

func (s *AnalysisService) Stats(ctx context.Context) (any, error) {
	stats, err := s.uc.Stats(ctx)
	if err != nil {
		s.log.WithContext(ctx).Errorf("获取统计失败: %v", err)
		return nil, apiError(nethttp.StatusInternalServerError, "STATS_FAILED", "Erro ao obter estatísticas", err.Error())
	}
	if !stats.DatabaseAvailable {
		return map[string]any{"database_available": false}, nil
	}
	return stats, nil
}

// RegisterAnalysisHTTPServer 注册分析服务的 HTTP 路由
func RegisterAnalysisHTTPServer(srv *http.Server, s *AnalysisService) {
	r := srv.Route("/")
	r.POST("/analyze", analyzeHandler(s))
	r.POST("/upload_attachment", uploadHandler(s))
	r.POST("/deep_search", deepSearchHandler(s))
	r.GET("/analyses", listHandler(s))
	r.GET("/analyses/{id}", getHandler(s))
	r.GET("/stats", statsHandler(s))
}

func analyzeHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in map[string]any
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.Analyze(ctx, req.(map[string]any))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func uploadHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		r := ctx.Request()
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, nethttp.ErrNotMultipart) {
			return ctx.JSON(400, &attachment.UploadResult{Success: false, Error: "Nenhum arquivo enviado"})
		}
		sessionID := r.FormValue("session_id")
		if sessionID == "" {
			sessionID = "default_session"
		}

		var in *uploadRequest
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			in = &uploadRequest{SessionID: sessionID, Filename: header.Filename, File: file}
		case hasEmptyFilenamePart(r):
			// 文件名为空的 part 被 multipart 当作普通字段，交给校验返回"文件名为空"
			in = &uploadRequest{SessionID: sessionID, File: strings.NewReader(r.MultipartForm.Value["file"][0])}
		default:
			return ctx.JSON(400, &attachment.UploadResult{Success: false, Error: "Nenhum arquivo enviado"})
		}

		http.SetOperation(ctx, OperationUploadAttachment)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.UploadAttachment(ctx, req.(*uploadRequest))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		res := out.(*attachment.UploadResult)
		if !res.Success {
			return ctx.JSON(400, res)
		}
		return ctx.Result(200, res)
	}
}

// hasEmptyFilenamePart 表单中存在 file 字段但没有文件名
func hasEmptyFilenamePart(r *nethttp.Request) bool {
	if r.MultipartForm == nil {
		return false
	}
	v, ok := r.MultipartForm.Value["file"]
	return ok && len(v) > 0
}

func deepSearchHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeepSearchRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationDeepSearch)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.DeepSearch(ctx, req.(*DeepSearchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func listHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		q := ctx.Query()
		in := biz.ListFilter{Segmento: strings.TrimSpace(q.Get("segmento"))}
		in.Limit, _ = strconv.Atoi(q.Get("limit"))
		in.Offset, _ = strconv.Atoi(q.Get("offset"))

		http.SetOperation(ctx, OperationListAnalyses)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.ListAnalyses(ctx, req.(biz.ListFilter))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func getHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		id := ctx.Vars().Get("id")
		http.SetOperation(ctx, OperationGetAnalysis)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.GetAnalysis(ctx, req.(string))
		})
		out, err := h(ctx, id)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func statsHandler(s *AnalysisService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationStats)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.Stats(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
