package domain

import "time"

// SearchResult is one ranked hit. Score is a cosine similarity in vector
// mode or a discrete match-tier weight in lexical mode; the two are not
// directly comparable across modes.
type SearchResult struct {
	ArticleID   string    `json:"article_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Excerpt     string    `json:"excerpt"`
	Score       float64   `json:"score"`
}

// GenerateResult reports one embedding-generation invocation. Already-written
// batches stay valid even when Status is "error".
type GenerateResult struct {
	Status            string `json:"status"`
	EmbeddingsCreated int    `json:"embeddings_created"`
	Error             string `json:"error,omitempty"`
}

// IngestResult reports one feed ingestion run.
type IngestResult struct {
	Status     string    `json:"status"`
	FeedURL    string    `json:"feed_url"`
	RowsLoaded int       `json:"rows_loaded"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
