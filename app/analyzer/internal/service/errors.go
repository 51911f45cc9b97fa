package service

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
)

const titleKey = "title"

// apiError 带标题的业务错误，标题写入响应的 error 字段
func apiError(code int, reason, title, message string) *errors.Error {
	return errors.New(code, reason, message).WithMetadata(map[string]string{titleKey: title})
}

// ErrorEncoder 将错误渲染为 {error, message}，5xx 额外带 timestamp
func ErrorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	title := se.Metadata[titleKey]
	if title == "" {
		title = se.Reason
	}
	body := map[string]any{
		"error":   title,
		"message": se.Message,
	}
	if se.Code >= nethttp.StatusInternalServerError {
		body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(int(se.Code))
	_ = json.NewEncoder(w).Encode(body)
}
