package attachment

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF 生成单页 PDF，xref 偏移按实际写入位置计算
func buildPDF(content string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestService_ProcessPDF(t *testing.T) {
	s := NewService(1, time.Minute)
	pdf := buildPDF("BT /F1 12 Tf 72 712 Td 14 TL (Faturamento anual de R$ 2 milhoes) Tj T* (margem de 30%) Tj ET")

	res, err := s.ProcessAttachment(context.Background(), "sess-pdf", "relatorio_financeiro.pdf", bytes.NewReader(pdf))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "application/pdf", res.MimeType)
	assert.Equal(t, TypeFinancial, res.ContentType)

	list := s.GetSessionAttachments("sess-pdf")
	require.Len(t, list, 1)
	assert.Contains(t, list[0].ExtractedContent, "Faturamento anual de R$ 2 milhoes")
	assert.Contains(t, list[0].ExtractedContent, "margem de 30%")
}

func TestService_ProcessPDF_Corrupt(t *testing.T) {
	s := NewService(1, time.Minute)
	_, err := s.ProcessAttachment(context.Background(), "s", "quebrado.pdf", bytes.NewReader([]byte("%PDF-1.4\nlixo sem estrutura")))
	require.Error(t, err)
	assert.Empty(t, s.GetSessionAttachments("s"))
}

func TestContentStreamText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{name: "single show", stream: "BT (Ola) Tj ET", want: "Ola"},
		{name: "array show", stream: "BT [(Re) -20 (ceita)] TJ ET", want: "Receita"},
		{name: "next line", stream: "BT (linha 1) Tj T* (linha 2) Tj ET", want: "linha 1\nlinha 2"},
		{name: "escapes", stream: `BT (a \(b\) c\\d) Tj ET`, want: `a (b) c\d`},
		{name: "nested parens", stream: "BT (x (y) z) Tj ET", want: "x (y) z"},
		{name: "octal latin1", stream: `BT (Pre\347o) Tj ET`, want: "Preço"},
		{name: "no text", stream: "0 0 m 10 10 l S", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentStreamText(tt.stream))
		})
	}
}
