package googleEmbedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/rag/embedding"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

var (
	logger          *logx.Logger
	once            sync.Once
	embeddingClient *client
	dimension       int32 = config.EmbeddingOutputDimensionality
)

type client struct {
	genAi *genai.Client
	model string
}

// GetGoogleEmbeddingClient returns the shared Gemini embedding client, or nil
// when the client could not be constructed.
func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logx.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return
	}
	embeddingClient = &client{genAi: c, model: modelName}
	logger.Info("Google Embedding client created", "model", modelName)
	go closeClient(ctx, embeddingClient)
}

func closeClient(ctx context.Context, c *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	c.genAi = nil
	c.model = ""
}

func (c *client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	res, err := c.doCall(ctx, genai.Text(text), "RETRIEVAL_QUERY")
	if err != nil {
		logger.Error("Error getting query embedding from Google", "error", err)
		return nil, err
	}
	if len(res.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}
	return res.Embeddings[0].Values, nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	res, err := c.doCall(ctx, getContent(texts), "RETRIEVAL_DOCUMENT")
	if err != nil && doRetry(err) {
		logger.Warn("Rate limit hit, retrying embedding call in 5 seconds")
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		res, err = c.doCall(ctx, getContent(texts), "RETRIEVAL_DOCUMENT")
	}
	if err != nil {
		logger.Error("Error getting batch embeddings from Google", "error", err)
		return nil, err
	}

	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, 0, len(res.Embeddings))
	for _, e := range res.Embeddings {
		vectors = append(vectors, e.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content, taskType string) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             taskType,
	})
}
