package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

var (
	// ErrTooLarge 文件超过大小上限
	ErrTooLarge = errors.New("file exceeds size limit")
	// ErrUnsupportedType 无法提取文本的文件类型
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyContent 文件中没有可用文本
	ErrEmptyContent = errors.New("no text could be extracted")
)

// UploadResult 上传处理结果
type UploadResult struct {
	Success       bool   `json:"success"`
	AttachmentID  string `json:"attachment_id,omitempty"`
	Filename      string `json:"filename,omitempty"`
	MimeType      string `json:"mime_type,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	ContentLength int    `json:"content_length,omitempty"`
	Preview       string `json:"preview,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Service 附件服务：按会话在内存中保存已提取文本的附件
type Service struct {
	mu      sync.Mutex
	store   *cache.Cache
	ttl     time.Duration
	maxSize int64
}

// NewService 创建附件服务
func NewService(maxSizeMB int, ttl time.Duration) *Service {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		store:   cache.New(ttl, 10*time.Minute),
		ttl:     ttl,
		maxSize: int64(maxSizeMB) << 20,
	}
}

// ProcessAttachment 读取文件、识别类型、提取文本并归入会话
func (s *Service) ProcessAttachment(ctx context.Context, sessionID, filename string, r io.Reader) (*UploadResult, error) {
	if sessionID == "" {
		sessionID = "default_session"
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: %d MB", ErrTooLarge, s.maxSize>>20)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mt := mimetype.Detect(data)
	text, err := extractText(filename, mt, data)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	att := model.Attachment{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		Filename:         filename,
		MimeType:         mt.String(),
		ContentType:      Classify(filename, text),
		ExtractedContent: text,
		Size:             int64(len(data)),
		UploadedAt:       time.Now().UTC(),
	}
	s.add(att)
	logger.Log.Infof("附件已处理 [%s] session=%s type=%s chars=%d", filename, sessionID, att.ContentType, len(text))

	return &UploadResult{
		Success:       true,
		AttachmentID:  att.ID,
		Filename:      filename,
		MimeType:      att.MimeType,
		ContentType:   att.ContentType,
		ContentLength: len(text),
		Preview:       preview(text, 500),
		Message:       "Anexo processado com sucesso",
	}, nil
}

// GetSessionAttachments 返回会话内的附件副本
func (s *Service) GetSessionAttachments(sessionID string) []model.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.store.Get(sessionID)
	if !ok {
		return nil
	}
	list := v.([]model.Attachment)
	out := make([]model.Attachment, len(list))
	copy(out, list)
	return out
}

func (s *Service) add(att model.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []model.Attachment
	if v, ok := s.store.Get(att.SessionID); ok {
		list = v.([]model.Attachment)
	}
	list = append(list, att)
	s.store.Set(att.SessionID, list, s.ttl)
}

func extractText(filename string, mt *mimetype.MIME, data []byte) (string, error) {
	switch {
	case isType(mt, "application/pdf"):
		return pdfText(data)
	case isType(mt, "text/html"):
		return htmlText(data)
	case isText(mt):
		return string(data), nil
	}
	// 部分纯文本格式（如 markdown）检测不出 text/plain
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".txt", ".csv", ".json":
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
}

// isText 沿 mimetype 继承链判断是否为文本格式
func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if isType(m, "text/plain") {
			return true
		}
	}
	return false
}

func isType(mt *mimetype.MIME, want string) bool {
	base, _, err := mime.ParseMediaType(mt.String())
	if err != nil {
		return false
	}
	return base == want
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
