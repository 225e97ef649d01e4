package session

import (
	"context"
	"sync"

	"github.com/akandula/DocChatAPI/internal/adapter/utils"
	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/data/store"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/metrics"
	"github.com/akandula/DocChatAPI/internal/rag"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

// CacheFactory builds one semantic answer cache per session. May return nil
// with an error; the session then runs without a cache.
type CacheFactory func(ctx context.Context, name string) (vectorDB.AnswerCache, error)

// Manager creates, looks up and deletes sessions, and mirrors each
// successful question round into the transcript archive.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	svc      rag.Service
	newCache CacheFactory
	archive  store.HistoryStore
	logger   *logx.Logger
}

func NewManager(svc rag.Service, newCache CacheFactory, archive store.HistoryStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		svc:      svc,
		newCache: newCache,
		archive:  archive,
		logger:   logx.NewLogger("session_manager"),
	}
}

func (m *Manager) Create(ctx context.Context) *Session {
	id := utils.GetNewUUID()

	var cache vectorDB.AnswerCache
	if m.newCache != nil {
		c, err := m.newCache(ctx, config.SessionCollectionStub+"-"+id)
		if err != nil {
			m.logger.Warn("Session starts without semantic cache", "sessionId", id, "error", err)
		} else {
			cache = c
		}
	}

	s := NewSession(id, m.svc, cache)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	metrics.IncrementActiveSessionCount()
	if err := m.archive.Init(ctx, id); err != nil {
		m.logger.Warn("Transcript init failed", "sessionId", id, "error", err)
	}

	m.logger.Info("Session created", "sessionId", id)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards the session wholesale. Creating a new session afterwards
// is the reset path; nothing survives except what Redis archived.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	metrics.DecrementActiveSessionCount()
	if err := m.archive.Drop(ctx, id); err != nil {
		m.logger.Warn("Transcript drop failed", "sessionId", id, "error", err)
	}
	m.logger.Info("Session deleted", "sessionId", id)
	return nil
}

func (m *Manager) ProcessDocuments(ctx context.Context, id string, uploads []chatModel.Upload) (chatModel.ProcessReport, error) {
	s, err := m.Get(id)
	if err != nil {
		return chatModel.ProcessReport{}, err
	}
	return s.ProcessDocuments(ctx, uploads)
}

func (m *Manager) Ask(ctx context.Context, id string, question string) (string, []string, []chatModel.ConversationTurn, error) {
	s, err := m.Get(id)
	if err != nil {
		return "", nil, nil, err
	}

	answer, sources, history, err := s.Ask(ctx, question)
	if err != nil {
		return "", nil, nil, err
	}

	// mirror the new round best-effort; the live history already holds it
	if len(history) >= 2 {
		if aerr := m.archive.AppendTurns(ctx, id, history[len(history)-2:]); aerr != nil {
			m.logger.Warn("Transcript append failed", "sessionId", id, "error", aerr)
		}
	}
	return answer, sources, history, nil
}

// Transcript prefers the archive and falls back to the live history.
func (m *Manager) Transcript(ctx context.Context, id string) ([]chatModel.ConversationTurn, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	turns, aerr := m.archive.GetTranscript(ctx, id)
	if aerr != nil || len(turns) == 0 {
		return s.History(), nil
	}
	return turns, nil
}
