package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/arturoeanton/go-blog-rag-ollama/internal/adapter/ai"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/adapter/feed"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/adapter/store"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/handler"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/middleware"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/port"
	"github.com/arturoeanton/go-blog-rag-ollama/internal/service"
	"github.com/arturoeanton/go-blog-rag-ollama/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting FeedLens AI",
		"port", cfg.Port,
		"ollama_embed", cfg.OllamaEmbedURL,
		"embed_model", cfg.OllamaEmbedModel,
		"search_mode", cfg.SearchMode,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := pgStore.EnsureSchema(context.Background()); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	vectorStore := store.NewVectorStore(pgStore, cfg.EmbeddingDimension)

	// ── Adapters ─────────────────────────────────────────────────────────
	embedder := ai.NewOllamaProvider(ai.OllamaEndpointConfig{
		BaseURL: cfg.OllamaEmbedURL,
		Model:   cfg.OllamaEmbedModel,
		Token:   cfg.OllamaEmbedToken,
	})
	feedReader := feed.NewReader()

	// ── Services ─────────────────────────────────────────────────────────
	chunker := service.NewChunker(cfg.MinChunkLength, cfg.TitleChunk)
	pipeline := service.NewPipeline(
		feedReader, pgStore, pgStore, vectorStore, embedder, chunker,
		cfg.MaxChunksPerRun, cfg.EmbedBatchSize,
	)

	// Strategy selection: lexical mode disables the similarity path
	// entirely; vector mode degrades to lexical per query on failure.
	lexical := service.NewLexicalSearch(pgStore)
	var primary, fallback port.Searcher
	if cfg.SearchMode == "lexical" {
		primary = lexical
	} else {
		primary = service.NewVectorSearch(embedder, vectorStore, cfg.SimilarityThreshold)
		fallback = lexical
	}
	searchService := service.NewSearchService(primary, fallback)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	// Request log middleware (persists all requests)
	app.Use(middleware.RequestLog(pgStore))

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c fiber.Ctx) error {
		status := "healthy"
		if err := pgStore.Ping(c.Context()); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":  status,
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	searchHandler := handler.NewSearchHandler(searchService)
	searchHandler.Register(api)

	pipelineHandler := handler.NewPipelineHandler(pipeline, cfg.FeedURL)
	pipelineHandler.Register(api)

	articlesHandler := handler.NewArticlesHandler(pgStore)
	articlesHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
