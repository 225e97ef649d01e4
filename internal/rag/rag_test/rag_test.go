package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag"
	"github.com/akandula/DocChatAPI/internal/rag/extract"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
)

const plainText = chatModel.MediaType("text/plain")

func init() {
	// plain-text extractor so pipeline tests don't need real PDF bytes
	extract.Register(plainText, func(data []byte) ([]extract.Page, error) {
		return []extract.Page{{Number: 1, Content: string(data)}}, nil
	})
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func textUpload(name string, content string) chatModel.Upload {
	return chatModel.Upload{Name: name, MediaType: plainText, Data: []byte(content)}
}

func TestBuildIndex_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		uploads     []chatModel.Upload
		setupMocks  func(e *MockEmbedder, b *MockBuilder)
		expectedErr error
		wantIndex   bool
		wantChunks  int
	}{
		{
			name:       "Success_Full_Flow",
			uploads:    []chatModel.Upload{textUpload("notes.txt", "some meaningful document text")},
			setupMocks: func(e *MockEmbedder, b *MockBuilder) {},
			wantIndex:  true,
			wantChunks: 1,
		},
		{
			name:        "Failure_No_Extractable_Text",
			uploads:     []chatModel.Upload{{Name: "img.png", MediaType: chatModel.MediaType("image/png"), Data: []byte("x")}},
			setupMocks:  func(e *MockEmbedder, b *MockBuilder) {},
			expectedErr: rag.ErrNoExtractedText,
		},
		{
			name:    "Failure_Embedding",
			uploads: []chatModel.Upload{textUpload("notes.txt", "text")},
			setupMocks: func(e *MockEmbedder, b *MockBuilder) {
				e.OnEmbedBatch = func(ctx context.Context, texts []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedErr: rag.ErrIndexBuild,
		},
		{
			name:    "Failure_Index_Build",
			uploads: []chatModel.Upload{textUpload("notes.txt", "text")},
			setupMocks: func(e *MockEmbedder, b *MockBuilder) {
				b.OnBuild = func(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error) {
					return nil, errors.New("backend down")
				}
			},
			expectedErr: rag.ErrIndexBuild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mBuilder := &MockBuilder{}
			tt.setupMocks(mEmbed, mBuilder)

			s := rag.NewService(mBuilder, &MockLLM{}, mEmbed)
			index, report, err := s.BuildIndex(testCtx(), "session-test", tt.uploads)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("error got %v, want %v", err, tt.expectedErr)
				}
				if index != nil {
					t.Error("failed build must not return an index")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantIndex && index == nil {
				t.Fatal("expected an index")
			}
			if report.ChunkCount != tt.wantChunks {
				t.Errorf("chunk count got %d, want %d", report.ChunkCount, tt.wantChunks)
			}
			if report.Documents != len(tt.uploads) {
				t.Errorf("document count got %d, want %d", report.Documents, len(tt.uploads))
			}
		})
	}
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM)
		expectedErr    error
		expectedAnswer string
		expectLLMCall  bool
	}{
		{
			name:           "Success_Full_Flow",
			setupMocks:     func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {},
			expectedAnswer: "mocked llm response",
			expectLLMCall:  true,
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				c.OnLookup = func(ctx context.Context, v []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
			},
			expectedAnswer: "cached answer",
		},
		{
			name: "Cache_Error_Does_Not_Fail_Question",
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				c.OnLookup = func(ctx context.Context, v []float32) (string, bool, error) {
					return "", false, errors.New("cache backend down")
				}
			},
			expectedAnswer: "mocked llm response",
			expectLLMCall:  true,
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				e.OnEmbedQuery = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedErr: rag.ErrQuestionFailed,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				i.OnQuery = func(ctx context.Context, v []float32, k int) ([]chatModel.Match, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedErr: rag.ErrQuestionFailed,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []chatModel.Match, h []chatModel.ConversationTurn) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedErr: rag.ErrQuestionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIndex := &MockIndex{Size: 1}
			mCache := &MockCache{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mIndex, mCache, mLLM)

			llmCalled := false
			userGenerate := mLLM.OnGenerate
			mLLM.OnGenerate = func(ctx context.Context, q string, m []chatModel.Match, h []chatModel.ConversationTurn) (string, error) {
				llmCalled = true
				if userGenerate != nil {
					return userGenerate(ctx, q, m, h)
				}
				return "mocked llm response", nil
			}

			s := rag.NewService(&MockBuilder{}, mLLM, mEmbed)
			answer, sources, err := s.Answer(testCtx(), mIndex, mCache, "test question", nil)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("error got %v, want %v", err, tt.expectedErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if answer != tt.expectedAnswer {
				t.Errorf("answer got %q, want %q", answer, tt.expectedAnswer)
			}
			if llmCalled != tt.expectLLMCall {
				t.Errorf("llm called = %v, want %v", llmCalled, tt.expectLLMCall)
			}
			if len(sources) != 1 || sources[0] != "chunk-0" {
				t.Errorf("sources got %v, want [chunk-0]", sources)
			}
		})
	}
}
