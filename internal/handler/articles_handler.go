package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/adapter/store"
)

// ArticlesHandler handles article listing and warehouse status endpoints.
type ArticlesHandler struct {
	store *store.PostgresStore
}

// NewArticlesHandler creates a new articles handler.
func NewArticlesHandler(s *store.PostgresStore) *ArticlesHandler {
	return &ArticlesHandler{store: s}
}

// Register sets up article routes.
func (h *ArticlesHandler) Register(router fiber.Router) {
	router.Get("/articles", h.List)
	router.Get("/status", h.Status)
}

// List returns all articles, newest first. Bodies are omitted to keep the
// response small.
func (h *ArticlesHandler) List(c fiber.Ctx) error {
	articles, err := h.store.ListArticles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	items := make([]fiber.Map, len(articles))
	for i, a := range articles {
		items[i] = fiber.Map{
			"id":           a.ID,
			"title":        a.Title,
			"url":          a.URL,
			"summary":      a.Summary,
			"published_at": a.PublishedAt,
			"body_length":  a.BodyLength,
		}
	}

	return c.JSON(fiber.Map{"articles": items, "count": len(items)})
}

// Status reports row counts per pipeline stage.
func (h *ArticlesHandler) Status(c fiber.Ctx) error {
	counts, err := h.store.Counts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(counts)
}
