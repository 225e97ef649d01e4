package embedding

import "context"

// Embedder turns text into fixed-dimension vectors. EmbedBatch returns one
// vector per input, in input order - callers rely on that to line vectors up
// with chunk identifiers.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
