package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func journalKey(session string) string { return "session:" + session + ":journal" }

// RedisSink appends entries to a per-session Redis list.
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink connects to redisURL.
func NewRedisSink(ctx context.Context, redisURL string) (*RedisSink, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisSink{rdb: rdb}, nil
}

// NewRedisSinkFromClient wraps an existing client for use in tests.
func NewRedisSinkFromClient(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

// Write pushes the entry onto the session list.
func (s *RedisSink) Write(ctx context.Context, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := s.rdb.RPush(ctx, journalKey(e.Session), b).Err(); err != nil {
		return fmt.Errorf("push journal entry %d: %w", e.Seq, err)
	}
	return nil
}

// Entries returns the session list in push order.
func (s *RedisSink) Entries(ctx context.Context, session string) ([]Entry, error) {
	raw, err := s.rdb.LRange(ctx, journalKey(session), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Close closes the Redis connection.
func (s *RedisSink) Close() error {
	return s.rdb.Close()
}
