package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxExchanges = 20
	defaultTTL   = 24 * time.Hour
)

// Exchange is one question/answer pair in a conversation thread.
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// Store keeps a capped per-thread history in redis. Threads expire
// after a day of inactivity.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Store{
		redis: redisClient,
		ttl:   ttl,
	}
}

func threadKey(threadID string) string {
	return "conversation:" + threadID
}

func (s *Store) Append(ctx context.Context, threadID string, ex Exchange) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}

	key := threadKey(threadID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -maxExchanges, -1)
	pipe.Expire(ctx, key, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to n exchanges, oldest first.
func (s *Store) Recent(ctx context.Context, threadID string, n int) ([]Exchange, error) {
	if n <= 0 || n > maxExchanges {
		n = maxExchanges
	}

	raw, err := s.redis.LRange(ctx, threadKey(threadID), int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	exchanges := make([]Exchange, 0, len(raw))
	for _, item := range raw {
		var ex Exchange
		if err := json.Unmarshal([]byte(item), &ex); err != nil {
			continue
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, nil
}

func (s *Store) Delete(ctx context.Context, threadID string) error {
	return s.redis.Del(ctx, threadKey(threadID)).Err()
}
