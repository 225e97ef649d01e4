package memoryDB

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

type builder struct {
	logger *logx.Logger
}

// NewBuilder returns a Builder producing purely in-memory indexes backed by
// chromem-go. Nothing touches disk; the index dies with the session.
func NewBuilder() vectorDB.Builder {
	return &builder{logger: logx.NewLogger("memory_index")}
}

func (b *builder) Build(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to index")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	// Fresh DB per build; the previous index stays valid until the caller
	// swaps it out.
	db := chromem.NewDB()
	collection, err := db.CreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        c.ID,
			Content:   c.Text,
			Metadata:  map[string]string{"source": c.ID},
			Embedding: vectors[i],
		}
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %w", err)
	}

	b.logger.Debug("Built in-memory index", "name", name, "chunks", len(chunks))
	return &index{collection: collection}, nil
}

type index struct {
	collection *chromem.Collection
}

func (idx *index) Query(ctx context.Context, vector []float32, topK int) ([]chatModel.Match, error) {
	k := topK
	if k <= 0 {
		k = config.DefaultTopK
	}
	// chromem rejects nResults above the stored document count
	if n := idx.collection.Count(); k > n {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	results, err := idx.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	matches := make([]chatModel.Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, chatModel.Match{
			ChunkID: r.ID,
			Text:    r.Content,
			Score:   r.Similarity,
		})
	}
	return matches, nil
}

func (idx *index) Len() int {
	return idx.collection.Count()
}
