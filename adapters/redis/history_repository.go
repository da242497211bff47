package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fraudlens/domain/history"
	"fraudlens/ports"

	"github.com/redis/go-redis/v9"
)

// historyKey is the Redis list the bounded history lives in, newest at the
// head so LPUSH + LTRIM implement insert-and-evict natively.
const historyKey = "fraudlens:history"

// Connect opens a Redis client and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.Printf("[Redis] Connected to %s (db %d)", addr, db)
	return client, nil
}

// historyRepository implements the HistoryRepository interface on a Redis
// list of JSON blobs.
type historyRepository struct {
	client *redis.Client
}

// NewHistoryRepository creates a new Redis-backed history repository
func NewHistoryRepository(client *redis.Client) ports.HistoryRepository {
	return &historyRepository{client: client}
}

// Insert pushes e onto the head of the list.
func (r *historyRepository) Insert(ctx context.Context, e history.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if err := r.client.LPush(ctx, historyKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *historyRepository) List(ctx context.Context, limit int) ([]history.Entry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	blobs, err := r.client.LRange(ctx, historyKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history list: %w", err)
	}

	entries := make([]history.Entry, 0, len(blobs))
	for _, blob := range blobs {
		var e history.Entry
		if err := json.Unmarshal([]byte(blob), &e); err != nil {
			// A corrupt blob should not take the whole page down.
			log.Printf("[Redis] Skipping undecodable history entry: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Trim keeps the newest max entries.
func (r *historyRepository) Trim(ctx context.Context, max int) error {
	if err := r.client.LTrim(ctx, historyKey, 0, int64(max)-1).Err(); err != nil {
		return fmt.Errorf("failed to trim history list: %w", err)
	}
	return nil
}

// Clear deletes the list.
func (r *historyRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, historyKey).Err(); err != nil {
		return fmt.Errorf("failed to clear history list: %w", err)
	}
	return nil
}
