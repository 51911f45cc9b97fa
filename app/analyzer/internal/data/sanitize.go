package data

import (
	"bytes"
	"encoding/json"
	"strings"
)

// cleanText 移除无效的 UTF-8 字符与 NULL 字符，PostgreSQL 文本字段不支持 NULL 字节
func cleanText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}

// nullText 空串写为 NULL
func nullText(s string) any {
	s = cleanText(s)
	if s == "" {
		return nil
	}
	return s
}

// jsonb 序列化为 JSONB 参数。JSONB 不接受 \u0000，
// 含 NULL 字符时解码后逐个清理字符串再重新编码。
func jsonb(v any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !bytes.Contains(b, []byte(`\u0000`)) {
		return b, nil
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(b))
	// 保留数字原样
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return json.Marshal(stripNUL(doc))
}

// stripNUL 递归清理键与字符串值
func stripNUL(v any) any {
	switch t := v.(type) {
	case string:
		return cleanText(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[cleanText(k)] = stripNUL(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = stripNUL(t[i])
		}
		return t
	default:
		return v
	}
}
