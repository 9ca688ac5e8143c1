package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const flashTTL = 10 * time.Minute

// FlashStore holds one-shot notices backed by Redis. Each browser session
// gets a list under flash:<session_id>; PopAll drains it atomically enough
// for single-user sessions (read then delete in a pipeline).
type FlashStore struct {
	client *redis.Client
}

// NewFlashStore creates a FlashStore wrapping the given Redis client.
func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

// Push appends a notice for the session and refreshes the TTL.
func (f *FlashStore) Push(ctx context.Context, sessionID, message string) error {
	key := f.key(sessionID)
	pipe := f.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("flash push: %w", err)
	}
	return nil
}

// PopAll returns the pending notices for the session and clears them.
func (f *FlashStore) PopAll(ctx context.Context, sessionID string) ([]string, error) {
	key := f.key(sessionID)
	pipe := f.client.TxPipeline()
	lrange := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("flash pop: %w", err)
	}
	return lrange.Val(), nil
}

func (f *FlashStore) key(sessionID string) string {
	return "flash:" + sessionID
}
