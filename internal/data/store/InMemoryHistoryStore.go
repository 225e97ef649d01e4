package store

import (
	"context"
	"sync"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

type InMemoryHistoryStore struct {
	lock        *sync.RWMutex
	transcripts map[string][]chatModel.ConversationTurn
}

func InitHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		lock:        new(sync.RWMutex),
		transcripts: make(map[string][]chatModel.ConversationTurn),
	}
}

func (s *InMemoryHistoryStore) Init(ctx context.Context, sessionID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.transcripts[sessionID] = make([]chatModel.ConversationTurn, 0)
	return nil
}

func (s *InMemoryHistoryStore) AppendTurns(ctx context.Context, sessionID string, turns []chatModel.ConversationTurn) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.transcripts[sessionID] = append(s.transcripts[sessionID], turns...)
	return nil
}

func (s *InMemoryHistoryStore) GetTranscript(ctx context.Context, sessionID string) ([]chatModel.ConversationTurn, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	turns := s.transcripts[sessionID]
	out := make([]chatModel.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *InMemoryHistoryStore) Drop(ctx context.Context, sessionID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.transcripts, sessionID)
	return nil
}
