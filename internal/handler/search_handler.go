package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/service"
)

// SearchHandler handles search endpoints.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Register sets up search routes.
func (h *SearchHandler) Register(router fiber.Router) {
	router.Get("/search", h.Search)
}

// Search ranks articles for a query string. The score is a similarity or
// relevance score; its meaning depends on the serving mode and is not
// directly comparable across modes.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.searchService.Search(c.Context(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"count":   len(results),
		"results": emptyIfNil(results),
	})
}

// emptyIfNil keeps JSON arrays as [] instead of null for empty result sets.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
