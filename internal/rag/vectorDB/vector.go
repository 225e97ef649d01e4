package vectorDB

import (
	"context"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

// Index is one immutable snapshot of embedded chunks. A session replaces its
// index wholesale on every successful processing action; there is no
// incremental update path.
type Index interface {
	// Query returns the topK most similar stored chunks. topK <= 0 falls
	// back to the configured default, and is clamped to the stored count.
	Query(ctx context.Context, vector []float32, topK int) ([]chatModel.Match, error)
	Len() int
}

// Builder creates an Index from chunks and their vectors. Build is
// all-or-nothing: on error no index is returned and the caller keeps
// whatever index it had before.
type Builder interface {
	Build(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (Index, error)
}

// AnswerCache remembers full answers keyed by question embedding, so a
// near-identical question can skip the LLM round trip.
type AnswerCache interface {
	Lookup(ctx context.Context, vector []float32) (string, bool, error)
	Save(ctx context.Context, vector []float32, answer string) error
}
