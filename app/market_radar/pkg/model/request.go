package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyBody 请求体为空
	ErrEmptyBody = errors.New("request body is empty")
	// ErrMissingSegment 缺少必填字段 segmento
	ErrMissingSegment = errors.New("segmento is required")
)

// Amount 经过宽松转换的数值字段；Set 表示请求中出现过该字段
type Amount struct {
	Value float64
	Set   bool
}

// Or 字段未出现时返回 def
func (a Amount) Or(def float64) float64 {
	if !a.Set {
		return def
	}
	return a.Value
}

// Ptr 字段未出现时返回 nil，用于可空的数据库列
func (a Amount) Ptr() *float64 {
	if !a.Set {
		return nil
	}
	v := a.Value
	return &v
}

// AnalysisRequest 归一化后的分析请求
type AnalysisRequest struct {
	Segmento           string
	Produto            string
	Publico            string
	Concorrentes       string
	PrazoLancamento    string
	DadosAdicionais    string
	SessionID          string
	Preco              Amount
	ObjetivoReceita    Amount
	OrcamentoMarketing Amount
	Raw                map[string]any
}

// ParseAnalysisRequest 校验并归一化原始请求体
func ParseAnalysisRequest(raw map[string]any) (*AnalysisRequest, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyBody
	}
	req := &AnalysisRequest{
		Segmento:           strings.TrimSpace(stringField(raw, "segmento")),
		Produto:            stringField(raw, "produto"),
		Publico:            stringField(raw, "publico"),
		Concorrentes:       stringField(raw, "concorrentes"),
		PrazoLancamento:    stringField(raw, "prazo_lancamento"),
		DadosAdicionais:    stringField(raw, "dados_adicionais"),
		SessionID:          stringField(raw, "session_id"),
		Preco:              amountField(raw, "preco"),
		ObjetivoReceita:    amountField(raw, "objetivo_receita"),
		OrcamentoMarketing: amountField(raw, "orcamento_marketing"),
		Raw:                raw,
	}
	if req.Segmento == "" {
		return nil, ErrMissingSegment
	}
	return req, nil
}

// ParseAmount 将数值或字符串转换为 float64，逗号视为小数点，失败时返回 0。
// NaN 与 ±Inf 同样视为无效。
func ParseAmount(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		f = parseFloat(strings.TrimSpace(n))
	default:
		f = parseFloat(fmt.Sprint(n))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

func amountField(raw map[string]any, key string) Amount {
	v, ok := raw[key]
	if !ok || v == nil {
		return Amount{}
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return Amount{}
	}
	return Amount{Value: ParseAmount(v), Set: true}
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
