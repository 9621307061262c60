package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Articles ---

// UpsertArticles inserts or updates articles keyed by canonical URL and
// returns the number of rows written. An existing row keeps its ID so that
// chunk ownership survives re-ingestion.
func (s *PostgresStore) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, title, url, summary, body, published_at, body_length)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			body = EXCLUDED.body,
			published_at = EXCLUDED.published_at,
			body_length = EXCLUDED.body_length,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx,
			a.ID, a.Title, a.URL, a.Summary, a.Body, a.PublishedAt, a.BodyLength,
		); err != nil {
			return 0, fmt.Errorf("upsert article %s: %w", a.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(articles), nil
}

// ListArticles returns all articles, newest first.
func (s *PostgresStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	query := `SELECT id, title, url, summary, body, published_at, body_length
	          FROM articles ORDER BY published_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.URL, &a.Summary, &a.Body, &a.PublishedAt, &a.BodyLength,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// --- Status ---

// TableCounts summarizes warehouse row counts for the status endpoint.
type TableCounts struct {
	Articles      int `json:"articles"`
	Chunks        int `json:"chunks"`
	Embeddings    int `json:"embeddings"`
	PendingChunks int `json:"pending_chunks"`
}

// Counts returns row counts per pipeline stage, including chunks still
// lacking an embedding.
func (s *PostgresStore) Counts(ctx context.Context) (*TableCounts, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM articles),
		(SELECT COUNT(*) FROM article_chunks),
		(SELECT COUNT(*) FROM article_embeddings),
		(SELECT COUNT(*) FROM article_chunks c
		  LEFT JOIN article_embeddings e ON c.id = e.chunk_id
		  WHERE e.chunk_id IS NULL)`

	var tc TableCounts
	err := s.db.QueryRowContext(ctx, query).Scan(
		&tc.Articles, &tc.Chunks, &tc.Embeddings, &tc.PendingChunks,
	)
	if err != nil {
		return nil, fmt.Errorf("counts: %w", err)
	}
	return &tc, nil
}

// --- Request logs ---

// WriteRequestLog implements middleware.RequestLogWriter.
func (s *PostgresStore) WriteRequestLog(method, path, query string, status int, durationMS int64, ip, userAgent string) error {
	q := `INSERT INTO request_logs (method, path, query, status, duration_ms, ip, user_agent)
	      VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(context.Background(), q,
		method, path, query, status, durationMS, ip, userAgent,
	)
	return err
}
