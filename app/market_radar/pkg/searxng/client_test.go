package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "pt-BR", r.URL.Query().Get("language"))
		assert.Equal(t, "general", r.URL.Query().Get("categories"))
		_, _ = w.Write([]byte(`{
			"query": "moda",
			"answers": ["resposta direta"],
			"results": [
				{"title": "A", "url": "https://a.example", "content": "a"},
				{"title": "B", "url": "https://b.example", "content": "b"},
				{"title": "C", "url": "https://c.example", "content": "c"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5, "pt-BR")
	resp, err := c.Search(context.Background(), &search.Request{Query: "moda", MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, "resposta direta", resp.Answer)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://b.example", resp.Results[1].URL)
}

func TestClient_SearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, "").Search(context.Background(), &search.Request{Query: "moda"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
