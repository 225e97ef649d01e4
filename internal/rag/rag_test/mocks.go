package rag_test

import (
	"context"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnEmbedQuery func(ctx context.Context, text string) ([]float32, error)
	OnEmbedBatch func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if m.OnEmbedQuery != nil {
		return m.OnEmbedQuery(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, texts)
	}
	return make([][]float32, len(texts)), nil
}

// MockBuilder implements vectorDB.Builder
type MockBuilder struct {
	OnBuild func(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error)
}

func (m *MockBuilder) Build(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error) {
	if m.OnBuild != nil {
		return m.OnBuild(ctx, name, chunks, vectors)
	}
	return &MockIndex{Size: len(chunks)}, nil
}

// MockIndex implements vectorDB.Index
type MockIndex struct {
	Size    int
	OnQuery func(ctx context.Context, vector []float32, topK int) ([]chatModel.Match, error)
}

func (m *MockIndex) Query(ctx context.Context, vector []float32, topK int) ([]chatModel.Match, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, topK)
	}
	return []chatModel.Match{{ChunkID: "chunk-0", Text: "default context", Score: 0.9}}, nil
}

func (m *MockIndex) Len() int {
	return m.Size
}

// MockCache implements vectorDB.AnswerCache
type MockCache struct {
	OnLookup func(ctx context.Context, vector []float32) (string, bool, error)
	OnSave   func(ctx context.Context, vector []float32, answer string) error
}

func (m *MockCache) Lookup(ctx context.Context, vector []float32) (string, bool, error) {
	if m.OnLookup != nil {
		return m.OnLookup(ctx, vector)
	}
	return "", false, nil
}

func (m *MockCache) Save(ctx context.Context, vector []float32, answer string) error {
	if m.OnSave != nil {
		return m.OnSave(ctx, vector, answer)
	}
	return nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, question string, matches []chatModel.Match, history []chatModel.ConversationTurn) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, question string, matches []chatModel.Match, history []chatModel.ConversationTurn) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, matches, history)
	}
	return "mocked llm response", nil
}
