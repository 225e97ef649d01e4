package store

import (
	"context"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

// HistoryStore is the read-side transcript archive. The session keeps the
// live history; the archive is written best-effort and never blocks an
// answer.
type HistoryStore interface {
	Init(ctx context.Context, sessionID string) error
	AppendTurns(ctx context.Context, sessionID string, turns []chatModel.ConversationTurn) error
	GetTranscript(ctx context.Context, sessionID string) ([]chatModel.ConversationTurn, error)
	Drop(ctx context.Context, sessionID string) error
}
