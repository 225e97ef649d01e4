package store

import (
	"context"
	"encoding/json"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/data/redisStore"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

type RedisHistoryStore struct {
	store  *redisStore.Store
	logger *logx.Logger
}

// GetRedisHistoryStore returns nil when Redis is offline; the caller falls
// back to the in-memory store.
func GetRedisHistoryStore(ctx context.Context) *RedisHistoryStore {
	s := redisStore.GetRedisStore(ctx, config.RedisTranscriptDB)
	if s == nil {
		return nil
	}
	return NewRedisHistoryStore(s)
}

func NewRedisHistoryStore(s *redisStore.Store) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  s,
		logger: logx.NewLogger("transcript_store"),
	}
}

func (s *RedisHistoryStore) Init(ctx context.Context, sessionID string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionID)
	log.Debug("Initializing transcript")
	// a fresh session must never inherit a stale transcript under a reused id
	return s.store.Del(ctx, sessionID)
}

func (s *RedisHistoryStore) AppendTurns(ctx context.Context, sessionID string, turns []chatModel.ConversationTurn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionID)
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			log.Error("Error marshalling turn", "error", err)
			return err
		}
		values = append(values, data)
	}

	if err := s.store.ListPush(ctx, sessionID, values...); err != nil {
		log.Error("Error saving turns", "error", err)
		return err
	}
	if err := s.store.Expire(ctx, sessionID, config.RedisTranscriptTTL); err != nil {
		log.Warn("Could not refresh transcript TTL", "error", err)
	}
	log.Debug("Saved turns", "count", len(turns))
	return nil
}

func (s *RedisHistoryStore) GetTranscript(ctx context.Context, sessionID string) ([]chatModel.ConversationTurn, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionID)

	raw, err := s.store.ListGetAll(ctx, sessionID)
	if err != nil {
		log.Error("Error getting transcript", "error", err)
		return nil, err
	}

	turns := make([]chatModel.ConversationTurn, 0, len(raw))
	for _, entry := range raw {
		var turn chatModel.ConversationTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			log.Error("Skipping malformed transcript entry", "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisHistoryStore) Drop(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, sessionID)
}
