package config

import (
	"log/slog"
	"os"
	"time"
)

// contextKey is unexported so no other package can collide with our
// context values.
type contextKey string

const TRACE_ID_KEY contextKey = "traceId"

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking - the splitter defaults the retrieval quality was tuned with
	ChunkSize    = 1000
	ChunkOverlap = 200

	//retrieval
	DefaultTopK                         = 4
	EmbeddingOutputDimensionality int32 = 768
	CacheSimilarityCutoff               = 0.97
	SemanticCacheEnabled                = true

	//providers
	GeminiModelName      = "gemini-2.0-flash"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	// Answers must stay grounded in the retrieved chunks, hence temperature 0.
	ModelTemperature float32 = 0
	ModelContext             = "You are a helpful assistant answering questions about the user's documents. " +
		"Answer only from the provided context. If the context does not contain the answer, say you don't know."

	//per-action deadlines; the upstream services define none of their own
	ProcessTimeout       = 120 * time.Second
	QuestionTimeout      = 60 * time.Second
	EmbeddingCallTimeout = 60 * time.Second
	PageExtractTimeout   = 10 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	MaxUploadBytes = 32 << 20 //32mb across one multipart batch

	//vectorDB
	QdrantHost            = "localhost"
	QdrantGrpcPort        = 6334
	QdrantUseTLS          = false
	QdrantPoolSize        = 1
	QdrantUpsertBatchSize = 100
	SessionCollectionStub = "docchat-session"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword      = ""
	RedisTranscriptDB  = 1
	RedisTranscriptTTL = 24 * time.Hour
)

// Env override helpers. The constants above are the fallbacks so the service
// still boots in a bare dev shell.

func ListenAddr() string {
	return envOr("LISTEN_ADDR", ServerListenAddr)
}

// GoogleAPIKey is the one required credential for the default provider pair.
func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LLMProvider selects the embedding/chat provider pair: "gemini" or "openai".
func LLMProvider() string {
	return envOr("LLM_PROVIDER", "gemini")
}

// VectorBackend selects the index implementation: "memory" or "qdrant".
func VectorBackend() string {
	return envOr("VECTOR_BACKEND", "memory")
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
