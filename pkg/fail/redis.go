package fail

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list reports are pushed to.
const DefaultRedisKey = "dev:failures"

// listClient is the subset of redis.Cmdable used by RedisPublisher.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisPublisher appends reports as JSON to a Redis list.
type RedisPublisher struct {
	client listClient
	key    string
	ttl    time.Duration
}

// NewRedisPublisher returns a publisher for client. A zero ttl keeps the
// list forever.
func NewRedisPublisher(client redis.Cmdable, key string, ttl time.Duration) *RedisPublisher {
	return newRedisPublisher(client, key, ttl)
}

func newRedisPublisher(client listClient, key string, ttl time.Duration) *RedisPublisher {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisPublisher{client: client, key: key, ttl: ttl}
}

func (p *RedisPublisher) Publish(ctx context.Context, r Report) error {
	if p == nil || p.client == nil {
		return errors.New("redis publisher not configured")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := p.client.RPush(ctx, p.key, data).Err(); err != nil {
		return err
	}
	if p.ttl > 0 {
		return p.client.Expire(ctx, p.key, p.ttl).Err()
	}
	return nil
}

// Recent returns up to n of the newest reports, oldest first.
func (p *RedisPublisher) Recent(ctx context.Context, n int64) ([]Report, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("redis publisher not configured")
	}
	if n <= 0 {
		return nil, nil
	}
	vals, err := p.client.LRange(ctx, p.key, -n, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Report, 0, len(vals))
	for _, v := range vals {
		var r Report
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
