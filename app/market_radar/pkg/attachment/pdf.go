package attachment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfText 用 pdfcpu 导出每页的内容流，再从中取出文本操作数
func pdfText(data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "market-radar-pdf-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	// pdfcpu 以文件为输入
	inFile := filepath.Join(dir, "upload.pdf")
	if err := os.WriteFile(inFile, data, 0o600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	pdfCtx, err := api.ReadContextFile(inFile)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	outDir := filepath.Join(dir, "pages")
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return "", fmt.Errorf("create page dir: %w", err)
	}
	if err := api.ExtractContentFile(inFile, outDir, nil, pdfmodel.NewDefaultConfiguration()); err != nil {
		return "", fmt.Errorf("extract pdf content: %w", err)
	}

	// 输出文件名形如 upload_Content_page_1.txt
	files, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read page dir: %w", err)
	}
	pageTexts := make(map[int]string)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		i := strings.Index(f.Name(), "Content_page_")
		if i < 0 {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(f.Name()[i:], "Content_page_%d", &pageNum); err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, f.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = contentStreamText(string(content))
	}

	pages := make([]int, 0, len(pageTexts))
	for n := range pageTexts {
		pages = append(pages, n)
	}
	sort.Ints(pages)

	var b strings.Builder
	for _, n := range pages {
		text := strings.TrimSpace(pageTexts[n])
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			fmt.Fprintf(&b, "\n\n--- Página %d ---\n\n", n)
		}
		b.WriteString(text)
	}
	if b.Len() == 0 && pdfCtx.PageCount > 0 {
		return "", fmt.Errorf("%w: %d page(s) without text", ErrEmptyContent, pdfCtx.PageCount)
	}
	return b.String(), nil
}

// contentStreamText 取出内容流中的字面量字符串 (...)，
// 每个 ET 或换行操作符 (T*, ', ") 结束一行
func contentStreamText(stream string) string {
	var (
		out  strings.Builder
		line strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			out.WriteString(s)
			out.WriteByte('\n')
		}
		line.Reset()
	}

	for i := 0; i < len(stream); i++ {
		c := stream[i]
		switch {
		case c == '(':
			s, end := literalString(stream, i)
			line.WriteString(s)
			i = end
		case c == '\'' || c == '"':
			flush()
		case isOperator(stream, i, "T*"):
			flush()
			i++
		case isOperator(stream, i, "ET"):
			flush()
			i++
		}
	}
	flush()
	return strings.TrimSpace(out.String())
}

// literalString 解析从 start 处 '(' 开始的字面量，返回内容与结束 ')' 的下标
func literalString(s string, start int) (string, int) {
	var b strings.Builder
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				return b.String(), i
			}
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '(', ')', '\\':
				b.WriteByte(s[i])
			case '\n':
				// 续行
			default:
				// 八进制转义
				if s[i] >= '0' && s[i] <= '7' {
					v, j := 0, i
					for ; j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7'; j++ {
						v = v*8 + int(s[j]-'0')
					}
					b.WriteRune(rune(v & 0xff))
					i = j - 1
				} else {
					b.WriteByte(s[i])
				}
			}
		case '(':
			if depth > 0 {
				b.WriteByte(c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i
			}
			b.WriteByte(c)
		default:
			// 单字节编码按 Latin-1 转换
			b.WriteRune(rune(c))
		}
	}
	return b.String(), len(s)
}

// isOperator 判断 s[i:] 是否为独立的操作符 op
func isOperator(s string, i int, op string) bool {
	if !strings.HasPrefix(s[i:], op) {
		return false
	}
	if i > 0 && !isDelimiter(s[i-1]) {
		return false
	}
	end := i + len(op)
	return end == len(s) || isDelimiter(s[end])
}

func isDelimiter(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
