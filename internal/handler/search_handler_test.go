package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/service"
)

type stubSearcher struct {
	results []domain.SearchResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	return s.results, s.err
}

func newSearchApp(s *stubSearcher) *fiber.App {
	app := fiber.New()
	h := NewSearchHandler(service.NewSearchService(s, nil))
	h.Register(app.Group("/api/v1"))
	return app
}

func TestSearchHandler_ReturnsResults(t *testing.T) {
	app := newSearchApp(&stubSearcher{results: []domain.SearchResult{
		{
			ArticleID:   "a1",
			Title:       "A Post",
			URL:         "https://example.com/post",
			PublishedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			Excerpt:     "Second paragraph about Snowflake.",
			Score:       0.5,
		},
	}})

	req := httptest.NewRequest("GET", "/api/v1/search?q=snowflake&limit=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Query   string                `json:"query"`
		Count   int                   `json:"count"`
		Results []domain.SearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "snowflake", body.Query)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "a1", body.Results[0].ArticleID)
	assert.Equal(t, 0.5, body.Results[0].Score)
}

func TestSearchHandler_EmptyQueryIsEmptyArray(t *testing.T) {
	app := newSearchApp(&stubSearcher{})

	req := httptest.NewRequest("GET", "/api/v1/search?q=", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count   int               `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
}

func TestSearchHandler_ErrorSurfaces(t *testing.T) {
	app := newSearchApp(&stubSearcher{err: errors.New("storage down")})

	req := httptest.NewRequest("GET", "/api/v1/search?q=snowflake", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
