package port

import (
	"context"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// ArticleStore is the warehouse upsert sink for articles, keyed by URL.
type ArticleStore interface {
	// UpsertArticles inserts or updates articles by canonical URL and
	// returns the number of rows written.
	UpsertArticles(ctx context.Context, articles []domain.Article) (int, error)

	// ListArticles returns all current articles, newest first.
	ListArticles(ctx context.Context) ([]domain.Article, error)
}

// ChunkStore persists article chunks. Regeneration replaces the chunk set for
// the given articles atomically, removing dependent embeddings in the same
// transaction.
type ChunkStore interface {
	// ReplaceChunks deletes all chunks (and their embeddings) for the
	// articles referenced by the given chunks, then inserts the new set.
	// Either the whole regeneration commits or none of it does.
	ReplaceChunks(ctx context.Context, articleIDs []string, chunks []domain.Chunk) error

	// MissingEmbeddings returns up to limit chunks that have no embedding
	// row, in insertion order.
	MissingEmbeddings(ctx context.Context, limit int) ([]domain.Chunk, error)
}

// EmbeddingStore persists chunk embeddings and serves the retrieval join.
type EmbeddingStore interface {
	// InsertEmbeddings writes one embedding row per chunk within a single
	// transaction.
	InsertEmbeddings(ctx context.Context, embeddings []domain.Embedding) error

	// CountEmbeddings returns the total number of stored embeddings.
	CountEmbeddings(ctx context.Context) (int, error)

	// ListEmbeddedChunks returns every embedding joined with its chunk and
	// parent article metadata.
	ListEmbeddedChunks(ctx context.Context) ([]domain.EmbeddedChunk, error)
}
