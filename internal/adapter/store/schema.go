package store

import (
	"context"
	"fmt"
)

const ddl = `
CREATE TABLE IF NOT EXISTS articles (
    id           UUID PRIMARY KEY,
    title        TEXT NOT NULL,
    url          TEXT NOT NULL UNIQUE,
    summary      TEXT NOT NULL DEFAULT '',
    body         TEXT NOT NULL,
    published_at TIMESTAMPTZ NOT NULL,
    body_length  INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS article_chunks (
    id           UUID PRIMARY KEY,
    article_id   UUID NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    article_url  TEXT NOT NULL,
    chunk_index  INTEGER NOT NULL,
    chunk_text   TEXT NOT NULL,
    chunk_length INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_article_chunks_article_id ON article_chunks (article_id);

CREATE TABLE IF NOT EXISTS article_embeddings (
    id         UUID PRIMARY KEY,
    chunk_id   UUID NOT NULL REFERENCES article_chunks(id) ON DELETE CASCADE,
    vector     JSONB NOT NULL,
    model      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_article_embeddings_chunk_id ON article_embeddings (chunk_id);

CREATE TABLE IF NOT EXISTS request_logs (
    id          BIGSERIAL PRIMARY KEY,
    method      TEXT NOT NULL,
    path        TEXT NOT NULL,
    query       TEXT NOT NULL DEFAULT '',
    status      INTEGER NOT NULL,
    duration_ms BIGINT NOT NULL,
    ip          TEXT NOT NULL DEFAULT '',
    user_agent  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the warehouse tables if they don't exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
