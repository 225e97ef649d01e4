package memoryDB

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/akandula/DocChatAPI/internal/adapter/utils"
	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

// answerCache is a per-session semantic cache over question embeddings. Two
// questions whose embeddings score above the similarity cutoff are treated as
// the same question and share one answer.
type answerCache struct {
	mu         sync.Mutex
	collection *chromem.Collection
	logger     *logx.Logger
}

func NewAnswerCache(name string) (vectorDB.AnswerCache, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache collection: %w", err)
	}
	return &answerCache{
		collection: collection,
		logger:     logx.NewLogger("semantic_cache"),
	}, nil
}

func (c *answerCache) Lookup(ctx context.Context, vector []float32) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collection.Count() == 0 {
		return "", false, nil
	}

	results, err := c.collection.QueryEmbedding(ctx, vector, 1, nil, nil)
	if err != nil || len(results) == 0 {
		return "", false, err
	}
	if results[0].Similarity < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	c.logger.Debug("Semantic cache hit", "score", results[0].Similarity)
	return results[0].Content, true, nil
}

func (c *answerCache) Save(ctx context.Context, vector []float32, answer string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := chromem.Document{
		ID:        utils.GetNewUUID(),
		Content:   answer,
		Embedding: vector,
	}
	if err := c.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to save cached answer: %w", err)
	}
	return nil
}
