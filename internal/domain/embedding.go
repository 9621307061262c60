package domain

import "time"

// Embedding is a vectorized chunk. One embedding per chunk per generation is
// the steady state; the write path only ever inserts for chunks that have no
// embedding yet.
type Embedding struct {
	ID        string    `json:"id"         db:"id"`
	ChunkID   string    `json:"chunk_id"   db:"chunk_id"`
	Vector    []float32 `json:"-"          db:"vector"`
	Model     string    `json:"model"      db:"model"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmbeddedChunk joins an embedding with its chunk and parent article
// metadata, as read back for similarity ranking.
type EmbeddedChunk struct {
	ChunkID     string    `json:"chunk_id"`
	ArticleID   string    `json:"article_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	ChunkText   string    `json:"chunk_text"`
	Vector      []float32 `json:"-"`
}
