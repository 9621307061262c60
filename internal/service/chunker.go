package service

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/domain"
)

// Chunker splits article bodies into retrievable units. A fragment must
// exceed minLength characters after trimming; anything shorter is discarded
// at creation time and never stored.
type Chunker struct {
	minLength  int
	titleChunk bool
}

// NewChunker creates a chunker with the given minimum fragment length.
// When titleChunk is set, index 0 is reserved for a synthetic chunk holding
// just the article title, which improves keyword recall on short queries.
func NewChunker(minLength int, titleChunk bool) *Chunker {
	return &Chunker{minLength: minLength, titleChunk: titleChunk}
}

// ChunkArticle splits the article body on paragraph boundaries (blank lines)
// and assigns chunk indexes by emission order starting at 0.
func (c *Chunker) ChunkArticle(article domain.Article) []domain.Chunk {
	var chunks []domain.Chunk

	emit := func(text string) {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.NewString(),
			ArticleID:  article.ID,
			ArticleURL: article.URL,
			Index:      len(chunks),
			Text:       text,
			Length:     utf8.RuneCountInString(text),
		})
	}

	if c.titleChunk {
		if title := strings.TrimSpace(article.Title); title != "" {
			emit(title)
		}
	}

	body := strings.ReplaceAll(article.Body, "\r\n", "\n")
	for _, paragraph := range strings.Split(body, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if utf8.RuneCountInString(paragraph) <= c.minLength {
			continue
		}
		emit(paragraph)
	}

	return chunks
}
