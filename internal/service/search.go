package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/port"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/vector"
)

const (
	// excerptLength bounds the chunk text carried in a search result.
	excerptLength = 500

	defaultLimit = 5
	maxLimit     = 20
)

// Lexical match-tier weights, highest match wins.
const (
	scoreTitleMatch   = 1.0
	scoreSummaryMatch = 0.7
	scoreBodyMatch    = 0.5
)

// VectorSearch ranks chunks by cosine similarity between the query embedding
// and every stored chunk embedding. Only hits strictly above the threshold
// are returned.
type VectorSearch struct {
	embedder  port.EmbeddingProvider
	vectors   port.EmbeddingStore
	threshold float64
}

// NewVectorSearch creates the vector-similarity search strategy.
func NewVectorSearch(embedder port.EmbeddingProvider, vectors port.EmbeddingStore, threshold float64) *VectorSearch {
	return &VectorSearch{embedder: embedder, vectors: vectors, threshold: threshold}
}

// Search implements port.Searcher. An empty embedding store yields an empty
// result, not an error: there is nothing to rank against.
func (s *VectorSearch) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	count, err := s.vectors.CountEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("count embeddings: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	chunks, err := s.vectors.ListEmbeddedChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list embedded chunks: %w", err)
	}

	var results []domain.SearchResult
	for _, ec := range chunks {
		// Mismatched dimensions or zero vectors score as undefined and
		// are simply skipped.
		score, ok := vector.Cosine(queryVector, ec.Vector)
		if !ok || score <= s.threshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ArticleID:   ec.ArticleID,
			Title:       ec.Title,
			URL:         ec.URL,
			PublishedAt: ec.PublishedAt,
			Excerpt:     excerptText(ec.ChunkText, excerptLength),
			Score:       score,
		})
	}

	sortResults(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// LexicalSearch scores articles by case-insensitive substring containment:
// title match 1.0, summary match 0.7, body match 0.5. No stemming,
// tokenization, or fuzzy matching.
type LexicalSearch struct {
	articles port.ArticleStore
}

// NewLexicalSearch creates the lexical fallback search strategy.
func NewLexicalSearch(articles port.ArticleStore) *LexicalSearch {
	return &LexicalSearch{articles: articles}
}

// Search implements port.Searcher. No matches is an empty result, never an
// error.
func (s *LexicalSearch) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	articles, err := s.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	needle := strings.ToLower(query)

	var results []domain.SearchResult
	for _, a := range articles {
		var score float64
		switch {
		case strings.Contains(strings.ToLower(a.Title), needle):
			score = scoreTitleMatch
		case strings.Contains(strings.ToLower(a.Summary), needle):
			score = scoreSummaryMatch
		case strings.Contains(strings.ToLower(a.Body), needle):
			score = scoreBodyMatch
		default:
			continue
		}

		excerpt := a.Summary
		if excerpt == "" {
			excerpt = excerptText(a.Body, excerptLength)
		}
		results = append(results, domain.SearchResult{
			ArticleID:   a.ID,
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Excerpt:     excerpt,
			Score:       score,
		})
	}

	sortResults(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchService unifies both strategies behind one contract. In vector mode
// any failure of the similarity path degrades to lexical search for that
// query; callers see the same result shape either way.
type SearchService struct {
	primary  port.Searcher
	fallback port.Searcher // nil disables degradation
}

// NewSearchService creates the search facade. fallback may be nil when the
// primary strategy is already lexical.
func NewSearchService(primary, fallback port.Searcher) *SearchService {
	return &SearchService{primary: primary, fallback: fallback}
}

// Search runs a query. The limit is clamped to [1,20] with a default of 5;
// an empty query is a degenerate input and yields an empty result.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	results, err := s.primary.Search(ctx, query, limit)
	if err == nil {
		return results, nil
	}
	if s.fallback == nil {
		return nil, err
	}

	slog.Warn("vector search failed, falling back to lexical", "error", err)
	return s.fallback.Search(ctx, query, limit)
}

// sortResults orders by score descending, then published timestamp
// descending, then URL, to keep ranking deterministic across invocations.
func sortResults(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].PublishedAt.Equal(results[j].PublishedAt) {
			return results[i].PublishedAt.After(results[j].PublishedAt)
		}
		return results[i].URL < results[j].URL
	})
}

// excerptText returns the first n bytes of s, backed off to a rune boundary.
func excerptText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
