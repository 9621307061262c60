package domain

// Chunk is the atomic unit of retrieval: a minimum-length fragment of an
// article body. Chunks are regenerated wholesale (delete-then-reinsert), so a
// chunk ID only ever belongs to the current generation.
type Chunk struct {
	ID         string `json:"id"          db:"id"`
	ArticleID  string `json:"article_id"  db:"article_id"`
	ArticleURL string `json:"article_url" db:"article_url"`
	Index      int    `json:"chunk_index" db:"chunk_index"`
	Text       string `json:"chunk_text"  db:"chunk_text"`
	Length     int    `json:"chunk_length" db:"chunk_length"`
}
