// Package feed reads RSS/Atom feeds and converts entries into article
// records ready for the warehouse upsert sink.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/k3a/html2text"
	"github.com/mmcdole/gofeed"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// Reader fetches a feed URL and produces Article records deduplicated by
// canonical URL.
type Reader struct {
	parser *gofeed.Parser
}

// NewReader creates a feed reader.
func NewReader() *Reader {
	return &Reader{parser: gofeed.NewParser()}
}

// Fetch downloads and parses the feed, returning one article per unique
// entry URL. Entries without a link are skipped; entries without a
// publication date fall back to the fetch time.
func (r *Reader) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool)
	var articles []domain.Article

	for _, item := range parsed.Items {
		url := strings.TrimSpace(item.Link)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		// Prefer the summary field; fall back to full content.
		raw := item.Description
		if raw == "" {
			raw = item.Content
		}
		body := strings.TrimSpace(html2text.HTML2Text(raw))
		summary := excerpt(body, 280)

		publishedAt := now
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			publishedAt = item.UpdatedParsed.UTC()
		}

		articles = append(articles, domain.Article{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(item.Title),
			URL:         url,
			Summary:     summary,
			Body:        body,
			PublishedAt: publishedAt,
			BodyLength:  len(body),
		})
	}

	return articles, nil
}

// excerpt returns the first n bytes of s, backed off to a rune boundary.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
