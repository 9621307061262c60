package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/service"
)

// PipelineHandler handles ingestion and embedding pipeline endpoints.
type PipelineHandler struct {
	pipeline       *service.Pipeline
	defaultFeedURL string
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(pipeline *service.Pipeline, defaultFeedURL string) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline, defaultFeedURL: defaultFeedURL}
}

// Register sets up pipeline routes.
func (h *PipelineHandler) Register(router fiber.Router) {
	router.Post("/ingest", h.Ingest)
	router.Post("/chunks/regenerate", h.RegenerateChunks)
	router.Post("/embeddings/generate", h.GenerateEmbeddings)
}

// Ingest fetches a feed and upserts its articles by URL.
func (h *PipelineHandler) Ingest(c fiber.Ctx) error {
	var body struct {
		FeedURL string `json:"feed_url"`
	}
	// An empty body is allowed; the configured feed is the default.
	_ = c.Bind().JSON(&body)

	feedURL := body.FeedURL
	if feedURL == "" {
		feedURL = h.defaultFeedURL
	}
	if feedURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "feed_url required"})
	}

	result := h.pipeline.Ingest(c.Context(), feedURL)
	if result.Status == "error" {
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}
	return c.JSON(result)
}

// RegenerateChunks rebuilds the chunk set for all current articles.
func (h *PipelineHandler) RegenerateChunks(c fiber.Ctx) error {
	created, err := h.pipeline.RegenerateChunks(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"chunks_created": created})
}

// GenerateEmbeddings embeds chunks that don't have an embedding yet.
func (h *PipelineHandler) GenerateEmbeddings(c fiber.Ctx) error {
	var body struct {
		MaxChunks int `json:"max_chunks"`
	}
	_ = c.Bind().JSON(&body)

	result := h.pipeline.GenerateMissingEmbeddings(c.Context(), body.MaxChunks)
	if result.Status == "error" {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}
