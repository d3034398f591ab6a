package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("storage: backend unavailable")

type RedisOptions struct {
	URL              string
	Prefix           string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	Logger           *slog.Logger
}

// RedisStore namespaces keys as {prefix}:{key} and guards every call with a
// circuit breaker so an unreachable server fails fast.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker[string]
}

func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(parsed)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, opts), nil
}

func NewRedisStore(client *redis.Client, opts RedisOptions) *RedisStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = 3
	}
	timeout := opts.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "zentask"
	}
	settings := gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (s *RedisStore) namespaceKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.breaker.Execute(func() (string, error) {
		v, err := s.client.Get(ctx, s.namespaceKey(key)).Result()
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return v, err
	})
	return value, translateBreakerErr(err)
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	_, err := s.breaker.Execute(func() (string, error) {
		return "", s.client.Set(ctx, s.namespaceKey(key), value, 0).Err()
	})
	return translateBreakerErr(err)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
