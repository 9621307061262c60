package service

import (
	"context"
	"errors"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// fakeEmbedder returns a deterministic vector per text and can be told to
// fail on the Nth batch call.
type fakeEmbedder struct {
	batchCalls  int
	failOnBatch int // 1-based; 0 = never fail
	embedErr    error
	dim         int
}

func (f *fakeEmbedder) ModelName() string { return "fake-embed-v1" }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.failOnBatch != 0 && f.batchCalls >= f.failOnBatch {
		return nil, errors.New("embedding service unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectorFor(t)
	}
	return out, nil
}

func (f *fakeEmbedder) vectorFor(text string) []float32 {
	dim := f.dim
	if dim == 0 {
		dim = 3
	}
	v := make([]float32, dim)
	for i, r := range text {
		v[i%dim] += float32(r)
	}
	return v
}

// fakeArticleStore serves a fixed article set.
type fakeArticleStore struct {
	articles []domain.Article
	upserted []domain.Article
	listErr  error
}

func (f *fakeArticleStore) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	f.upserted = append(f.upserted, articles...)
	return len(articles), nil
}

func (f *fakeArticleStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.articles, nil
}

// fakeChunkStore keeps chunks in memory and tracks which have embeddings via
// the paired fakeEmbeddingStore.
type fakeChunkStore struct {
	chunks     []domain.Chunk
	embeddings *fakeEmbeddingStore
	replaceErr error
}

func (f *fakeChunkStore) ReplaceChunks(ctx context.Context, articleIDs []string, chunks []domain.Chunk) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	ids := make(map[string]bool, len(articleIDs))
	for _, id := range articleIDs {
		ids[id] = true
	}
	var kept []domain.Chunk
	for _, c := range f.chunks {
		if !ids[c.ArticleID] {
			kept = append(kept, c)
		}
	}
	f.chunks = append(kept, chunks...)
	return nil
}

func (f *fakeChunkStore) MissingEmbeddings(ctx context.Context, limit int) ([]domain.Chunk, error) {
	var missing []domain.Chunk
	for _, c := range f.chunks {
		if f.embeddings != nil && f.embeddings.hasChunk(c.ID) {
			continue
		}
		missing = append(missing, c)
		if len(missing) == limit {
			break
		}
	}
	return missing, nil
}

// fakeEmbeddingStore records inserted embeddings.
type fakeEmbeddingStore struct {
	inserted  []domain.Embedding
	insertErr error
	listErr   error
	chunks    []domain.EmbeddedChunk
}

func (f *fakeEmbeddingStore) InsertEmbeddings(ctx context.Context, embeddings []domain.Embedding) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, embeddings...)
	return nil
}

func (f *fakeEmbeddingStore) CountEmbeddings(ctx context.Context) (int, error) {
	if len(f.chunks) > 0 {
		return len(f.chunks), nil
	}
	return len(f.inserted), nil
}

func (f *fakeEmbeddingStore) ListEmbeddedChunks(ctx context.Context) ([]domain.EmbeddedChunk, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.chunks, nil
}

func (f *fakeEmbeddingStore) hasChunk(chunkID string) bool {
	for _, e := range f.inserted {
		if e.ChunkID == chunkID {
			return true
		}
	}
	return false
}

// fakeFeedReader serves a canned article list.
type fakeFeedReader struct {
	articles []domain.Article
	err      error
}

func (f *fakeFeedReader) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}
