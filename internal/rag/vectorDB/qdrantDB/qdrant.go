package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"

	"github.com/akandula/DocChatAPI/internal/adapter/utils"
	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

var logger *logx.Logger
var qdrantInstance *qdrant.Client
var once sync.Once

type ClientHolder struct {
	QObj *qdrant.Client
}

// GetQdrantClient returns the shared Qdrant client, or nil when the server is
// unreachable. Sessions then share one server but each build gets its own
// collection.
func GetQdrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logx.NewLogger("qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient() *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// NewBuilder returns a Builder that materializes each index as a dedicated
// Qdrant collection. Every build writes into a fresh generation collection
// and the previous one is dropped only after the new one is complete, so a
// failed rebuild leaves the prior index fully queryable.
func NewBuilder(holder *ClientHolder) vectorDB.Builder {
	return &builder{client: holder.QObj, live: make(map[string]string)}
}

type builder struct {
	client *qdrant.Client

	mu   sync.Mutex
	live map[string]string //index name -> collection currently serving it
}

func (b *builder) Build(ctx context.Context, name string, chunks []chatModel.Chunk, vectors [][]float32) (vectorDB.Index, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to index")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	collection := generationName(name)
	if err := createCollection(ctx, b.client, collection, uint64(len(vectors[0]))); err != nil {
		return nil, fmt.Errorf("could not create collection %q: %w", collection, err)
	}

	for start := 0; start < len(chunks); start += config.QdrantUpsertBatchSize {
		end := start + config.QdrantUpsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := upsertBatch(ctx, b.client, collection, chunks[start:end], vectors[start:end]); err != nil {
			dropCollection(ctx, b.client, collection)
			return nil, err
		}
	}

	if superseded := b.swapLive(name, collection); superseded != "" {
		dropCollection(ctx, b.client, superseded)
	}

	logger.Debug("Built qdrant index", "collection", collection, "chunks", len(chunks))
	return &index{client: b.client, collection: collection, size: len(chunks)}, nil
}

// generationName appends a fresh suffix so concurrent or failed builds can
// never touch the collection a live index is reading from.
func generationName(name string) string {
	return name + "-" + utils.GetNewUUID()
}

// swapLive records the collection now serving the index and returns the one
// it replaces, if any.
func (b *builder) swapLive(name string, collection string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	superseded := b.live[name]
	b.live[name] = collection
	return superseded
}

func upsertBatch(ctx context.Context, client *qdrant.Client, collection string, chunks []chatModel.Chunk, vectors [][]float32) error {
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(utils.GetNewUUID()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":  chunk.Text,
				"chunk_id": chunk.ID,
			}),
		}
	}

	_, err := client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func recreateCollection(ctx context.Context, client *qdrant.Client, collectionName string, dimension uint64) error {
	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		if err := client.DeleteCollection(ctx, collectionName); err != nil {
			return err
		}
	}
	return createCollection(ctx, client, collectionName, dimension)
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string, dimension uint64) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

// dropCollection is best effort; a leaked collection costs storage, not
// correctness.
func dropCollection(ctx context.Context, client *qdrant.Client, collectionName string) {
	if err := client.DeleteCollection(ctx, collectionName); err != nil {
		logger.Warn("Could not drop collection", "collection", collectionName, "error", err)
	}
}

type index struct {
	client     *qdrant.Client
	collection string
	size       int
}

func (idx *index) Query(ctx context.Context, vector []float32, topK int) ([]chatModel.Match, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	k := topK
	if k <= 0 {
		k = config.DefaultTopK
	}

	result, err := idx.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: idx.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]chatModel.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, chatModel.Match{
			ChunkID: hit.Payload["chunk_id"].GetStringValue(),
			Text:    hit.Payload["content"].GetStringValue(),
			Score:   hit.Score,
		})
	}
	return matches, nil
}

func (idx *index) Len() int {
	return idx.size
}
