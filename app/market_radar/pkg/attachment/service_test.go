package attachment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ProcessPlainText(t *testing.T) {
	s := NewService(1, time.Minute)

	res, err := s.ProcessAttachment(context.Background(), "sess-1", "notas.txt",
		strings.NewReader("Faturamento anual de R$ 2 milhões com margem de 30%."))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, TypeFinancial, res.ContentType)
	assert.NotEmpty(t, res.AttachmentID)
	assert.True(t, strings.HasPrefix(res.MimeType, "text/plain"))

	list := s.GetSessionAttachments("sess-1")
	require.Len(t, list, 1)
	assert.Equal(t, "notas.txt", list[0].Filename)
	assert.Equal(t, "sess-1", list[0].SessionID)
	assert.Empty(t, s.GetSessionAttachments("other"))
}

func TestService_ProcessHTML(t *testing.T) {
	s := NewService(1, time.Minute)
	html := "<html>\n<head><style>p{}</style></head>\n<body>\n<h1>Concorrentes</h1>\n<script>x()</script>\n<p>Loja   A e Loja B</p>\n</body>\n</html>"

	res, err := s.ProcessAttachment(context.Background(), "", "page.html", strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, TypeCompetitor, res.ContentType)

	list := s.GetSessionAttachments("default_session")
	require.Len(t, list, 1)
	assert.Equal(t, "Concorrentes Loja A e Loja B", list[0].ExtractedContent)
}

func TestService_Rejections(t *testing.T) {
	s := NewService(1, time.Minute)

	_, err := s.ProcessAttachment(context.Background(), "s", "big.txt", strings.NewReader(strings.Repeat("a", 1<<20+1)))
	assert.ErrorIs(t, err, ErrTooLarge)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err = s.ProcessAttachment(context.Background(), "s", "logo.png", strings.NewReader(string(png)))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.ProcessAttachment(context.Background(), "s", "vazio.txt", strings.NewReader("   \n  "))
	assert.ErrorIs(t, err, ErrEmptyContent)

	assert.Empty(t, s.GetSessionAttachments("s"))
}

func TestService_ConcurrentUploads(t *testing.T) {
	s := NewService(1, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ProcessAttachment(context.Background(), "sess", "a.txt", strings.NewReader("pesquisa de mercado"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, s.GetSessionAttachments("sess"), 20)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, TypeCompetitor, Classify("concorrentes.csv", ""))
	assert.Equal(t, TypeFinancial, Classify("dre.txt", "Receita líquida"))
	assert.Equal(t, TypeMarket, Classify("survey.md", ""))
	assert.Equal(t, TypeGeneral, Classify("notas.txt", "lista de tarefas"))
}
