package llm

import (
	"context"
	"time"
)

type Config struct {
	OllamaURL     string
	GenerateModel string
	EmbedModel    string
	Timeout       time.Duration
}

// Generator is the completion capability consumed by the classifier and
// the answer synthesizer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder is the vectorization capability consumed by the ticket store
// for semantic search and by the seeder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
