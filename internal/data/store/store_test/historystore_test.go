package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/data/redisStore"
	"github.com/akandula/DocChatAPI/internal/data/store"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

func newRedisHistoryStore(t *testing.T) (*store.RedisHistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.NewRedisHistoryStore(redisStore.NewTestStore(client)), mr
}

func sampleTurns() []chatModel.ConversationTurn {
	now := time.Now().UTC().Truncate(time.Second)
	return []chatModel.ConversationTurn{
		{Role: chatModel.RoleUser, Content: "What is in the report?", CreatedAt: now},
		{Role: chatModel.RoleAssistant, Content: "The report covers Q3.", Sources: []string{"chunk-0", "chunk-3"}, CreatedAt: now},
	}
}

func TestRedisHistoryStore_Lifecycle(t *testing.T) {
	historyStore, mr := newRedisHistoryStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionID := "session_abc_123"

	t.Run("Append and Get Roundtrip", func(t *testing.T) {
		if err := historyStore.Init(ctx, sessionID); err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		turns := sampleTurns()
		if err := historyStore.AppendTurns(ctx, sessionID, turns); err != nil {
			t.Fatalf("AppendTurns failed: %v", err)
		}

		got, err := historyStore.GetTranscript(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetTranscript failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(got))
		}
		if got[0].Role != chatModel.RoleUser || got[1].Role != chatModel.RoleAssistant {
			t.Errorf("turn order not preserved: %v, %v", got[0].Role, got[1].Role)
		}
		if got[1].Content != turns[1].Content {
			t.Errorf("content mismatch: got %q, want %q", got[1].Content, turns[1].Content)
		}
		if len(got[1].Sources) != 2 || got[1].Sources[0] != "chunk-0" {
			t.Errorf("sources not round-tripped: %v", got[1].Sources)
		}
	})

	t.Run("TTL Is Set", func(t *testing.T) {
		if mr.TTL(sessionID) == 0 {
			t.Error("expected a TTL on the transcript key")
		}
	})

	t.Run("Init Resets Stale Transcript", func(t *testing.T) {
		if err := historyStore.Init(ctx, sessionID); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		got, err := historyStore.GetTranscript(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetTranscript failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty transcript after Init, got %d turns", len(got))
		}
	})

	t.Run("Drop Removes Key", func(t *testing.T) {
		if err := historyStore.AppendTurns(ctx, sessionID, sampleTurns()); err != nil {
			t.Fatalf("AppendTurns failed: %v", err)
		}
		if err := historyStore.Drop(ctx, sessionID); err != nil {
			t.Fatalf("Drop failed: %v", err)
		}
		if mr.Exists(sessionID) {
			t.Error("transcript still exists after Drop")
		}
	})

	t.Run("Get Non-Existent Transcript", func(t *testing.T) {
		got, err := historyStore.GetTranscript(ctx, "ghost-id")
		if err != nil {
			t.Fatalf("expected clean empty read, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no turns, got %d", len(got))
		}
	})
}

func TestInMemoryHistoryStore_Lifecycle(t *testing.T) {
	historyStore := store.InitHistoryStore()
	ctx := context.Background()
	sessionID := "session_mem_1"

	if err := historyStore.Init(ctx, sessionID); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := historyStore.AppendTurns(ctx, sessionID, sampleTurns()); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	got, err := historyStore.GetTranscript(ctx, sessionID)
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d (err %v)", len(got), err)
	}

	// returned slice is a copy, mutating it must not affect the store
	got[0].Content = "mutated"
	again, _ := historyStore.GetTranscript(ctx, sessionID)
	if again[0].Content == "mutated" {
		t.Error("GetTranscript leaked internal slice")
	}

	if err := historyStore.Drop(ctx, sessionID); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if after, _ := historyStore.GetTranscript(ctx, sessionID); len(after) != 0 {
		t.Error("transcript survived Drop")
	}
}
