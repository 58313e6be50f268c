package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisHistory keeps each game's undo stack in a redis list of JSON
// snapshots, newest at the head.
type RedisHistory struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewRedisHistory(rdb *redis.Client, limit int, ttl time.Duration) *RedisHistory {
	return &RedisHistory{rdb: rdb, limit: limit, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("redis url is empty")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (h *RedisHistory) key(gameID string) string { return "shashki:history:" + strings.TrimSpace(gameID) }

func (h *RedisHistory) Push(ctx context.Context, gameID string, snap model.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	key := h.key(gameID)
	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, key, raw)
	if h.limit > 0 {
		pipe.LTrim(ctx, key, 0, int64(h.limit-1))
	}
	if h.ttl > 0 {
		pipe.Expire(ctx, key, h.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (h *RedisHistory) Pop(ctx context.Context, gameID string) (model.Snapshot, bool, error) {
	raw, err := h.rdb.LPop(ctx, h.key(gameID)).Bytes()
	if err == redis.Nil {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

func (h *RedisHistory) Len(ctx context.Context, gameID string) (int, error) {
	n, err := h.rdb.LLen(ctx, h.key(gameID)).Result()
	return int(n), err
}

func (h *RedisHistory) Clear(ctx context.Context, gameID string) error {
	return h.rdb.Del(ctx, h.key(gameID)).Err()
}
