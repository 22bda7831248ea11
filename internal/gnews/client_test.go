package gnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":       q.Get("q"),
			"lang":    q.Get("lang"),
			"country": q.Get("country"),
			"max":     q.Get("max"),
			"apikey":  q.Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalArticles": 2,
			"articles": [
				{"title": "First", "url": "https://news.example.com/1", "source": {"name": "Example"}},
				{"title": "Second", "url": "https://news.example.com/2", "source": {"name": "Example"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("key-123", srv.URL)
	articles, err := client.Search(context.Background(), "tech OR sports")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"q":       "tech OR sports",
		"lang":    "en",
		"country": "us",
		"max":     "10",
		"apikey":  "key-123",
	}, gotQuery)

	require.Len(t, articles, 2)
	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "https://news.example.com/2", articles[1].URL)
}

func TestSearchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["bad api key"]}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("bad-key", srv.URL)
	_, err := client.Search(context.Background(), "tech")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSearchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClientWithBaseURL("key", srv.URL)
	_, err := client.Search(context.Background(), "tech")
	assert.Error(t, err)
}
