package domain

import "time"

// Article is a blog post as delivered by the feed reader and upserted
// into the warehouse by canonical URL.
type Article struct {
	ID          string    `json:"id"           db:"id"`
	Title       string    `json:"title"        db:"title"`
	URL         string    `json:"url"          db:"url"`
	Summary     string    `json:"summary"      db:"summary"`
	Body        string    `json:"body"         db:"body"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	BodyLength  int       `json:"body_length"  db:"body_length"`
}
