package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbedServer(t *testing.T, fn func(input []string) [][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)

		var req struct {
			Model string      `json:"model"`
			Input interface{} `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var texts []string
		switch in := req.Input.(type) {
		case string:
			texts = []string{in}
		case []interface{}:
			for _, v := range in {
				texts = append(texts, v.(string))
			}
		}

		resp := map[string]interface{}{"embeddings": fn(texts)}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOllamaProvider_Embed(t *testing.T) {
	srv := newEmbedServer(t, func(input []string) [][]float32 {
		return [][]float32{{0.1, 0.2, 0.3}}
	})
	defer srv.Close()

	p := NewOllamaProvider(OllamaEndpointConfig{BaseURL: srv.URL, Model: "bge-m3"})
	vec, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOllamaProvider_EmbedBatch_PreservesOrder(t *testing.T) {
	srv := newEmbedServer(t, func(input []string) [][]float32 {
		out := make([][]float32, len(input))
		for i := range input {
			out[i] = []float32{float32(i), float32(len(input[i]))}
		}
		return out
	})
	defer srv.Close()

	p := NewOllamaProvider(OllamaEndpointConfig{BaseURL: srv.URL, Model: "bge-m3"})
	vecs, err := p.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Equal(t, []float32{0, 1}, vecs[0])
	assert.Equal(t, []float32{1, 2}, vecs[1])
	assert.Equal(t, []float32{2, 3}, vecs[2])
}

func TestOllamaProvider_EmbedBatch_CountMismatch(t *testing.T) {
	srv := newEmbedServer(t, func(input []string) [][]float32 {
		return [][]float32{{1}}
	})
	defer srv.Close()

	p := NewOllamaProvider(OllamaEndpointConfig{BaseURL: srv.URL, Model: "bge-m3"})
	_, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestOllamaProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaEndpointConfig{BaseURL: srv.URL, Model: "bge-m3"})
	_, err := p.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestOllamaProvider_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": [][]float32{{1}}})
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaEndpointConfig{BaseURL: srv.URL, Model: "bge-m3", Token: "secret"})
	_, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)
}
