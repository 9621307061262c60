package port

import "context"

// EmbeddingProvider abstracts the external embedding service. Implementations
// can target Ollama, OpenAI, or any compatible API.
type EmbeddingProvider interface {
	// ModelName returns the identifier of the embedding model in use.
	ModelName() string

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// The result preserves input order: vector i belongs to texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
