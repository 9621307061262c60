package port

import (
	"context"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// Searcher ranks articles for a query string. Both implementations (vector
// similarity and lexical substring scoring) return the same result shape;
// only the meaning of Score differs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
