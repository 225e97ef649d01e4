package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/metrics"
	"github.com/akandula/DocChatAPI/internal/rag/chunk"
	"github.com/akandula/DocChatAPI/internal/rag/extract"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

func wrap(class error, cause error) error {
	return fmt.Errorf("%w: %w", class, cause)
}

func (s *service) executeExtractStep(log *logx.Logger, uploads []chatModel.Upload) extract.Result {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	res := extract.Batch(uploads, log)
	log.Debug("Extraction done", "documents", res.Documents, "warnings", len(res.Warnings), "errors", len(res.Errors))
	return res
}

func (s *service) executeChunkStep(log *logx.Logger, text string) []chatModel.Chunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	chunks := chunk.Chunks(text, config.ChunkSize, config.ChunkOverlap)
	log.Debug("Chunking done", "chunks", len(chunks))
	return chunks
}

func (s *service) executeEmbedBatchStep(ctx context.Context, log *logx.Logger, chunks []chatModel.Chunk) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embedCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	vectors, err := s.embedder.EmbedBatch(embedCtx, texts)
	if err != nil {
		log.Error("Batch embedding failed", "error", err)
	}
	return vectors, err
}

func (s *service) executeIndexBuildStep(ctx context.Context, log *logx.Logger, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_build", time.Since(start)) }()

	index, err := s.builder.Build(ctx, name, chunks, vectors)
	if err != nil {
		log.Error("Index build failed", "error", err)
	}
	return index, err
}

func (s *service) executeEmbedQueryStep(ctx context.Context, log *logx.Logger, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	embedCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	vector, err := s.embedder.EmbedQuery(embedCtx, question)
	if err != nil {
		log.Error("Question embedding failed", "error", err)
	}
	return vector, err
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logx.Logger, cache vectorDB.AnswerCache, vector []float32) (string, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found, err := cache.Lookup(ctx, vector)
	if err != nil {
		// cache trouble never fails the question
		log.Warn("Cache lookup failed", "error", err)
		return "", false
	}
	return answer, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, log *logx.Logger, index vectorDB.Index, vector []float32) ([]chatModel.Match, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	matches, err := index.Query(ctx, vector, config.DefaultTopK)
	if err != nil {
		log.Error("Vector search failed", "error", err)
	}
	return matches, err
}

func (s *service) executeLLMStep(ctx context.Context, log *logx.Logger, question string, matches []chatModel.Match, history []chatModel.ConversationTurn) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	answer, err := s.llmProvider.Generate(ctx, question, matches, history)
	if err != nil {
		log.Error("LLM generation failed", "error", err)
	}
	return answer, err
}
