package port

import (
	"context"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// FeedReader produces article records from a feed URL, deduplicated by URL.
type FeedReader interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.Article, error)
}
