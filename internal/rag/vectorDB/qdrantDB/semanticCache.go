package qdrantDB

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/akandula/DocChatAPI/internal/adapter/utils"
	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
)

// NewAnswerCache creates a Qdrant-backed semantic answer cache in its own
// collection. One cache per session keeps answers from leaking between
// unrelated document sets.
func NewAnswerCache(ctx context.Context, holder *ClientHolder, name string) (vectorDB.AnswerCache, error) {
	collection := name + "-cache"
	err := recreateCollection(ctx, holder.QObj, collection, uint64(config.EmbeddingOutputDimensionality))
	if err != nil {
		return nil, fmt.Errorf("cache collection creation failed: %w", err)
	}
	return &answerCache{client: holder.QObj, collection: collection}, nil
}

type answerCache struct {
	client     *qdrant.Client
	collection string
}

func (c *answerCache) Lookup(ctx context.Context, vector []float32) (string, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	searchResult, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Cache query failed", "error", err)
		return "", false, err
	}
	if len(searchResult) == 0 {
		return "", false, nil
	}
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Debug("Found cached answer", "score", searchResult[0].Score)
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (c *answerCache) Save(ctx context.Context, vector []float32, answer string) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	_, err := c.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(utils.GetNewUUID()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":    answer,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
