package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/data/store"
	"github.com/akandula/DocChatAPI/internal/handlers"
	"github.com/akandula/DocChatAPI/internal/mcpserver"
	"github.com/akandula/DocChatAPI/internal/rag"
	"github.com/akandula/DocChatAPI/internal/rag/embedding"
	"github.com/akandula/DocChatAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akandula/DocChatAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akandula/DocChatAPI/internal/rag/llm"
	"github.com/akandula/DocChatAPI/internal/rag/llm/gemini"
	"github.com/akandula/DocChatAPI/internal/rag/llm/openaiLLM"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB/memoryDB"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akandula/DocChatAPI/internal/server"
	"github.com/akandula/DocChatAPI/internal/session"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

var (
	listenAddr string
	mcpMode    bool
)

func main() {
	_ = godotenv.Load()

	logx.Init(config.IS_PROD, config.LOG_LEVEL_PROD)
	var logger = logx.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ListenAddr(), "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the MCP stdio surface instead of HTTP")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	embeddingService, llmProvider := buildProviders(serviceContext)
	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	builder, cacheFactory := buildVectorBackend(serviceContext, logger)
	if builder == nil {
		logger.Error("Vector backend failed to initialize. Shutting down.")
		return
	}

	ragService := rag.NewService(builder, llmProvider, embeddingService)

	var archive store.HistoryStore
	if redisArchive := store.GetRedisHistoryStore(serviceContext); redisArchive != nil {
		archive = redisArchive
	} else {
		logger.Error("Redis transcript store is offline, using in-memory archive")
		archive = store.InitHistoryStore()
	}

	manager := session.NewManager(ragService, cacheFactory, archive)

	if mcpMode {
		mcpServer := mcpserver.NewServer(manager)
		if err := mcpServer.Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	handlers.InitSessionHandler(manager)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildProviders(ctx context.Context) (embedding.Embedder, llm.Provider) {
	switch config.LLMProvider() {
	case "openai":
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey()),
			openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey())
	default:
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey()),
			gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey())
	}
}

func buildVectorBackend(ctx context.Context, logger *logx.Logger) (vectorDB.Builder, session.CacheFactory) {
	if config.VectorBackend() == "qdrant" {
		holder := qdrantDB.GetQdrantClient(ctx)
		if holder == nil {
			logger.Error("Qdrant is unreachable, falling back to the in-memory index")
		} else {
			return qdrantDB.NewBuilder(holder), func(cacheCtx context.Context, name string) (vectorDB.AnswerCache, error) {
				return qdrantDB.NewAnswerCache(cacheCtx, holder, name)
			}
		}
	}

	return memoryDB.NewBuilder(), func(_ context.Context, name string) (vectorDB.AnswerCache, error) {
		return memoryDB.NewAnswerCache(name)
	}
}
