package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/port"
)

// Pipeline drives the ingestion stages: feed to articles to chunks to embeddings.
type Pipeline struct {
	feed     port.FeedReader
	articles port.ArticleStore
	chunks   port.ChunkStore
	vectors  port.EmbeddingStore
	embedder port.EmbeddingProvider
	chunker  *Chunker

	maxChunksPerRun int
	batchSize       int
}

// NewPipeline creates the ingestion pipeline.
func NewPipeline(
	feed port.FeedReader,
	articles port.ArticleStore,
	chunks port.ChunkStore,
	vectors port.EmbeddingStore,
	embedder port.EmbeddingProvider,
	chunker *Chunker,
	maxChunksPerRun, batchSize int,
) *Pipeline {
	return &Pipeline{
		feed:            feed,
		articles:        articles,
		chunks:          chunks,
		vectors:         vectors,
		embedder:        embedder,
		chunker:         chunker,
		maxChunksPerRun: maxChunksPerRun,
		batchSize:       batchSize,
	}
}

// Ingest fetches the feed and upserts its articles into the warehouse by URL.
func (p *Pipeline) Ingest(ctx context.Context, feedURL string) domain.IngestResult {
	result := domain.IngestResult{FeedURL: feedURL, Timestamp: time.Now().UTC()}

	articles, err := p.feed.Fetch(ctx, feedURL)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	rows, err := p.articles.UpsertArticles(ctx, articles)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	slog.Info("feed ingested", "feed_url", feedURL, "rows_loaded", rows)
	result.Status = "success"
	result.RowsLoaded = rows
	return result
}

// RegenerateChunks rebuilds the chunk set for all current articles. The
// replacement is all-or-nothing: on any storage error the prior generation
// stays intact, and embeddings of deleted chunks are removed in the same
// transaction.
func (p *Pipeline) RegenerateChunks(ctx context.Context) (int, error) {
	articles, err := p.articles.ListArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list articles: %w", err)
	}

	articleIDs := make([]string, len(articles))
	var chunks []domain.Chunk
	for i, a := range articles {
		articleIDs[i] = a.ID
		chunks = append(chunks, p.chunker.ChunkArticle(a)...)
	}

	if err := p.chunks.ReplaceChunks(ctx, articleIDs, chunks); err != nil {
		return 0, fmt.Errorf("replace chunks: %w", err)
	}

	slog.Info("chunks regenerated", "articles", len(articles), "chunks", len(chunks))
	return len(chunks), nil
}

// GenerateMissingEmbeddings embeds chunks that have no embedding row yet,
// capped at maxChunks per invocation (the configured default applies when
// maxChunks <= 0). Chunks are embedded in fixed-size batches; each batch is
// committed before the next is attempted, so a mid-run failure leaves every
// prior batch durable and only still-missing chunks for the retry.
func (p *Pipeline) GenerateMissingEmbeddings(ctx context.Context, maxChunks int) domain.GenerateResult {
	if maxChunks <= 0 {
		maxChunks = p.maxChunksPerRun
	}

	missing, err := p.chunks.MissingEmbeddings(ctx, maxChunks)
	if err != nil {
		return domain.GenerateResult{Status: "error", Error: err.Error()}
	}
	if len(missing) == 0 {
		return domain.GenerateResult{Status: "success", EmbeddingsCreated: 0}
	}

	model := p.embedder.ModelName()
	created := 0

	for start := 0; start < len(missing); start += p.batchSize {
		end := start + p.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			slog.Error("embed batch failed", "offset", start, "error", err)
			return domain.GenerateResult{Status: "error", EmbeddingsCreated: created, Error: err.Error()}
		}

		embeddings := make([]domain.Embedding, len(batch))
		for i, c := range batch {
			embeddings[i] = domain.Embedding{
				ID:      uuid.NewString(),
				ChunkID: c.ID,
				Vector:  vectors[i],
				Model:   model,
			}
		}

		if err := p.vectors.InsertEmbeddings(ctx, embeddings); err != nil {
			slog.Error("store embeddings failed", "offset", start, "error", err)
			return domain.GenerateResult{Status: "error", EmbeddingsCreated: created, Error: err.Error()}
		}
		created += len(batch)
	}

	slog.Info("embeddings generated", "created", created)
	return domain.GenerateResult{Status: "success", EmbeddingsCreated: created}
}
