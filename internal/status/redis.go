package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "generation-run:"

// RedisStore keeps generation run records in Redis so status survives a
// server restart and is visible to every instance behind the load balancer
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis using the given URL and verifies the
// connection with a ping
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get returns the run for the episode, or nil when none exists
func (s *RedisStore) Get(ctx context.Context, episodeID string) (*models.GenerationRun, error) {
	data, err := s.client.Get(ctx, keyPrefix+episodeID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read generation run: %w", err)
	}

	var run models.GenerationRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode generation run: %w", err)
	}
	return &run, nil
}

// Set stores the run with the configured TTL
func (s *RedisStore) Set(ctx context.Context, run *models.GenerationRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode generation run: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+run.EpisodeID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store generation run: %w", err)
	}
	return nil
}

// Delete removes the run record for the episode
func (s *RedisStore) Delete(ctx context.Context, episodeID string) error {
	if err := s.client.Del(ctx, keyPrefix+episodeID).Err(); err != nil {
		return fmt.Errorf("failed to delete generation run: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
