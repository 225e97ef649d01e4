package rag

import (
	"context"
	"errors"
	"strings"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/metrics"
	"github.com/akandula/DocChatAPI/internal/rag/embedding"
	"github.com/akandula/DocChatAPI/internal/rag/llm"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

// Pipeline failure classes. Callers branch on these with errors.Is; the
// wrapped detail carries the underlying cause.
var (
	ErrNoExtractedText = errors.New("no extractable text in uploaded documents")
	ErrNoChunks        = errors.New("extracted text produced no chunks")
	ErrIndexBuild      = errors.New("index build failed")
	ErrQuestionFailed  = errors.New("question processing failed")
)

// Service runs the document pipeline. The session layer owns state and
// locking; this layer only knows how to turn uploads into an index and a
// question into an answer.
type Service interface {
	BuildIndex(ctx context.Context, name string, uploads []chatModel.Upload) (vectorDB.Index, chatModel.ProcessReport, error)
	Answer(ctx context.Context, index vectorDB.Index, cache vectorDB.AnswerCache, question string, history []chatModel.ConversationTurn) (string, []string, error)
}

type service struct {
	builder     vectorDB.Builder
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logx.Logger
}

// NewService wires the pipeline. Swapping any dependency for a mock is how
// the tests exercise failure paths.
func NewService(builder vectorDB.Builder, llmProvider llm.Provider, em embedding.Embedder) Service {
	return &service{
		builder:     builder,
		llmProvider: llmProvider,
		embedder:    em,
		logger:      logx.NewLogger("rag_service"),
	}
}

func (s *service) BuildIndex(ctx context.Context, name string, uploads []chatModel.Upload) (vectorDB.Index, chatModel.ProcessReport, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	report := chatModel.ProcessReport{}

	// Extraction
	extracted := s.executeExtractStep(inMethodLogger, uploads)
	report.Warnings = extracted.Warnings
	report.DocErrors = extracted.Errors
	report.Documents = extracted.Documents
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, report, ErrNoExtractedText
	}

	// Chunking
	chunks := s.executeChunkStep(inMethodLogger, extracted.Text)
	if len(chunks) == 0 {
		return nil, report, ErrNoChunks
	}
	report.ChunkCount = len(chunks)

	// Embedding
	vectors, err := s.executeEmbedBatchStep(ctx, inMethodLogger, chunks)
	if err != nil {
		return nil, report, wrap(ErrIndexBuild, err)
	}

	// Index build; all-or-nothing, the caller keeps its old index on error
	index, err := s.executeIndexBuildStep(ctx, inMethodLogger, name, chunks, vectors)
	if err != nil {
		return nil, report, wrap(ErrIndexBuild, err)
	}

	metrics.AddDocumentsProcessed(report.Documents)
	return index, report, nil
}

func (s *service) Answer(ctx context.Context, index vectorDB.Index, cache vectorDB.AnswerCache, question string, history []chatModel.ConversationTurn) (string, []string, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	// Embedding
	queryVector, err := s.executeEmbedQueryStep(ctx, inMethodLogger, question)
	if err != nil {
		return "", nil, wrap(ErrQuestionFailed, err)
	}

	// Vector search runs before the cache so every answer carries sources.
	matches, err := s.executeVectorSearchStep(ctx, inMethodLogger, index, queryVector)
	if err != nil {
		return "", nil, wrap(ErrQuestionFailed, err)
	}
	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, m.ChunkID)
	}

	// Cache check
	if cache != nil && config.SemanticCacheEnabled {
		if answer, found := s.executeCacheCheckStep(ctx, inMethodLogger, cache, queryVector); found {
			metrics.IncrementCacheHits()
			return answer, sources, nil
		}
	}

	// LLM generation
	answer, err := s.executeLLMStep(ctx, inMethodLogger, question, matches, history)
	if err != nil {
		return "", nil, wrap(ErrQuestionFailed, err)
	}

	// Background cache save
	if cache != nil && config.SemanticCacheEnabled {
		go func() {
			if err := cache.Save(context.WithoutCancel(ctx), queryVector, answer); err != nil {
				s.logger.Error("Failed to save to cache", "error", err)
			}
		}()
	}

	return answer, sources, nil
}
