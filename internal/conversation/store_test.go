package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func setupTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping test")
	}
	return NewStore(redisClient, time.Minute), ctx
}

func TestStore_AppendAndRecent(t *testing.T) {
	store, ctx := setupTestStore(t)
	threadID := "test-thread-" + time.Now().Format("20060102150405.000")
	defer store.Delete(ctx, threadID)

	exchanges := []Exchange{
		{Question: "q1", Answer: "a1", AskedAt: time.Now()},
		{Question: "q2", Answer: "a2", AskedAt: time.Now()},
	}
	for _, ex := range exchanges {
		if err := store.Append(ctx, threadID, ex); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := store.Recent(ctx, threadID, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(got))
	}
	if got[0].Question != "q1" || got[1].Question != "q2" {
		t.Error("exchanges should come back oldest first")
	}
}

func TestStore_Recent_Empty(t *testing.T) {
	store, ctx := setupTestStore(t)

	got, err := store.Recent(ctx, "missing-thread", 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no exchanges, got %d", len(got))
	}
}

func TestStore_CapsHistory(t *testing.T) {
	store, ctx := setupTestStore(t)
	threadID := "test-cap-" + time.Now().Format("20060102150405.000")
	defer store.Delete(ctx, threadID)

	for i := 0; i < maxExchanges+5; i++ {
		if err := store.Append(ctx, threadID, Exchange{Question: "q", Answer: "a"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := store.Recent(ctx, threadID, maxExchanges+5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) > maxExchanges {
		t.Errorf("history should be capped at %d, got %d", maxExchanges, len(got))
	}
}
