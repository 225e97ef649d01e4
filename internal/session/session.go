package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/metrics"
	"github.com/akandula/DocChatAPI/internal/rag"
	"github.com/akandula/DocChatAPI/internal/rag/vectorDB"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

var (
	ErrNoIndex         = errors.New("question processing refused: no documents have been processed")
	ErrSessionBusy     = errors.New("another action is in flight for this session")
	ErrSessionNotFound = errors.New("session not found")
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
)

// Session owns at most one index and the append-only conversation history.
// Failed actions leave both untouched; a successful processing action
// replaces the index wholesale and preserves the history.
type Session struct {
	ID string

	// actionMu admits one in-flight action; stateMu guards reads of the
	// published index and history.
	actionMu sync.Mutex
	stateMu  sync.RWMutex

	index   vectorDB.Index
	history []chatModel.ConversationTurn

	cache  vectorDB.AnswerCache
	svc    rag.Service
	logger *logx.Logger
}

func NewSession(id string, svc rag.Service, cache vectorDB.AnswerCache) *Session {
	return &Session{
		ID:     id,
		cache:  cache,
		svc:    svc,
		logger: logx.NewLogger("session").With("sessionId", id),
	}
}

// ProcessDocuments runs the full pipeline over the uploads and, only on
// success, swaps in the new index. History survives reprocessing.
func (s *Session) ProcessDocuments(ctx context.Context, uploads []chatModel.Upload) (chatModel.ProcessReport, error) {
	if !s.actionMu.TryLock() {
		return chatModel.ProcessReport{}, ErrSessionBusy
	}
	defer s.actionMu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureActionMetrics("process_documents", time.Since(start)) }()

	actionCtx, cancel := context.WithTimeout(ctx, config.ProcessTimeout)
	defer cancel()

	index, report, err := s.svc.BuildIndex(actionCtx, config.SessionCollectionStub+"-"+s.ID, uploads)
	if err != nil {
		s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Warn("Processing failed, keeping prior index", "error", err)
		return report, err
	}

	s.stateMu.Lock()
	s.index = index
	s.stateMu.Unlock()

	s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Info("Index replaced", "chunks", report.ChunkCount, "documents", report.Documents)
	return report, nil
}

// Ask answers one question against the current index. Exactly two turns are
// appended on success; on any failure history and index are untouched.
func (s *Session) Ask(ctx context.Context, question string) (string, []string, []chatModel.ConversationTurn, error) {
	if !s.actionMu.TryLock() {
		return "", nil, nil, ErrSessionBusy
	}
	defer s.actionMu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureActionMetrics("ask", time.Since(start)) }()

	s.stateMu.RLock()
	index := s.index
	history := s.history
	s.stateMu.RUnlock()

	// precondition: refuse before any provider call
	if index == nil {
		return "", nil, nil, ErrNoIndex
	}

	actionCtx, cancel := context.WithTimeout(ctx, config.QuestionTimeout)
	defer cancel()

	answer, sources, err := s.svc.Answer(actionCtx, index, s.cache, question, history)
	if err != nil {
		return "", nil, nil, err
	}

	now := time.Now().UTC()
	newTurns := []chatModel.ConversationTurn{
		{Role: chatModel.RoleUser, Content: question, CreatedAt: now},
		{Role: chatModel.RoleAssistant, Content: answer, Sources: sources, CreatedAt: now},
	}

	s.stateMu.Lock()
	s.history = append(s.history, newTurns...)
	snapshot := make([]chatModel.ConversationTurn, len(s.history))
	copy(snapshot, s.history)
	s.stateMu.Unlock()

	return answer, sources, snapshot, nil
}

// History returns a copy of the conversation so far.
func (s *Session) History() []chatModel.ConversationTurn {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]chatModel.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.index == nil {
		return StateUninitialized
	}
	return StateReady
}

// IndexSize reports the number of chunks currently indexed, 0 when
// uninitialized.
func (s *Session) IndexSize() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}
