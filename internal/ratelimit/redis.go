package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore keeps hits in a sorted set per key, scored by unix nanoseconds,
// so several server instances share one window.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func windowStart(at time.Time, window time.Duration) string {
	// "(" makes the bound exclusive
	return "(" + strconv.FormatInt(at.Add(-window).UnixNano(), 10)
}

func (s *RedisStore) Add(ctx context.Context, key string, at time.Time, window time.Duration) (int, error) {
	key = redisKeyPrefix + key
	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(at.Add(-window).UnixNano(), 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: uuid.NewString()})
		card = pipe.ZCard(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis add: %w", err)
	}
	return int(card.Val()), nil
}

func (s *RedisStore) Count(ctx context.Context, key string, at time.Time, window time.Duration) (int, error) {
	n, err := s.client.ZCount(ctx, redisKeyPrefix+key, windowStart(at, window), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis count: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis reset: %w", err)
	}
	return nil
}
