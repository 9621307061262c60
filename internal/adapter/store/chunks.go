package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// ReplaceChunks regenerates the chunk set for the given articles inside a
// single transaction: prior chunks are deleted (their embeddings go with them
// via cascade) and the new set is inserted. Either the whole regeneration
// commits or none of it does.
func (s *PostgresStore) ReplaceChunks(ctx context.Context, articleIDs []string, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// ON DELETE CASCADE on article_embeddings.chunk_id removes the orphaned
	// embeddings in the same statement.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM article_chunks WHERE article_id = ANY($1)`,
		pq.Array(articleIDs),
	); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO article_chunks (id, article_id, article_url, chunk_index, chunk_text, chunk_length)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.ArticleID, c.ArticleURL, c.Index, c.Text, c.Length,
		); err != nil {
			return fmt.Errorf("insert chunk %s[%d]: %w", c.ArticleID, c.Index, err)
		}
	}

	return tx.Commit()
}

// MissingEmbeddings returns up to limit chunks that have no embedding row,
// in a fixed order so repeated invocations walk the backlog deterministically.
func (s *PostgresStore) MissingEmbeddings(ctx context.Context, limit int) ([]domain.Chunk, error) {
	query := `SELECT c.id, c.article_id, c.article_url, c.chunk_index, c.chunk_text, c.chunk_length
	          FROM article_chunks c
	          LEFT JOIN article_embeddings e ON c.id = e.chunk_id
	          WHERE e.chunk_id IS NULL
	          ORDER BY c.article_url, c.chunk_index
	          LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("missing embeddings: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.ArticleURL, &c.Index, &c.Text, &c.Length,
		); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
