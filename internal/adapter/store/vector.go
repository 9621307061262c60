package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// VectorStore handles embedding persistence and the retrieval join. Vectors
// are stored as JSONB arrays and compared in the application, so similarity
// keeps its defined-or-null semantics regardless of database extensions.
type VectorStore struct {
	store     *PostgresStore
	dimension int
}

// NewVectorStore creates a vector store backed by the given Postgres store.
func NewVectorStore(store *PostgresStore, dimension int) *VectorStore {
	return &VectorStore{store: store, dimension: dimension}
}

// InsertEmbeddings persists one embedding row per chunk within a single
// transaction, so a batch is either fully durable or not written at all.
func (v *VectorStore) InsertEmbeddings(ctx context.Context, embeddings []domain.Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO article_embeddings (id, chunk_id, vector, model)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range embeddings {
		vectorJSON, err := json.Marshal(e.Vector)
		if err != nil {
			return fmt.Errorf("marshal vector: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.ChunkID, vectorJSON, e.Model); err != nil {
			return fmt.Errorf("insert embedding for chunk %s: %w", e.ChunkID, err)
		}
	}

	return tx.Commit()
}

// CountEmbeddings returns the total number of stored embeddings.
func (v *VectorStore) CountEmbeddings(ctx context.Context) (int, error) {
	var n int
	err := v.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_embeddings`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return n, nil
}

// ListEmbeddedChunks returns every embedding joined with its chunk and parent
// article metadata for similarity ranking.
func (v *VectorStore) ListEmbeddedChunks(ctx context.Context) ([]domain.EmbeddedChunk, error) {
	query := `SELECT c.id, a.id, a.title, a.url, a.published_at, c.chunk_text, e.vector
	          FROM article_embeddings e
	          JOIN article_chunks c ON e.chunk_id = c.id
	          JOIN articles a ON c.article_id = a.id`

	rows, err := v.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list embedded chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.EmbeddedChunk
	for rows.Next() {
		var ec domain.EmbeddedChunk
		var vectorJSON []byte
		if err := rows.Scan(
			&ec.ChunkID, &ec.ArticleID, &ec.Title, &ec.URL, &ec.PublishedAt,
			&ec.ChunkText, &vectorJSON,
		); err != nil {
			return nil, fmt.Errorf("scan embedded chunk: %w", err)
		}
		if err := json.Unmarshal(vectorJSON, &ec.Vector); err != nil {
			return nil, fmt.Errorf("unmarshal vector for chunk %s: %w", ec.ChunkID, err)
		}
		results = append(results, ec)
	}
	return results, rows.Err()
}
