// Package redisstore keeps the durable half of the session in Redis.
package redisstore

import (
	"context"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/suryanavv/ims/sessions"
)

var _ sessions.Store = (*Store)(nil)

// Store is a sessions.Store over plain Redis string keys.
type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps an existing client. Keys are namespaced with prefix (e.g. "ims:").
func New(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial parses a redis:// URL, connects and pings.
func Dial(ctx context.Context, url, prefix string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "[redisstore.Dial] parse redis URL")
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "[redisstore.Dial] redis ping failed")
	}
	return New(client, prefix), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", errors.New("[redisstore.Get] redis client is nil")
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", sessions.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "[redisstore.Get] %s", key)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return errors.New("[redisstore.Set] redis client is nil")
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "[redisstore.Set] %s", key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("[redisstore.Delete] redis client is nil")
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "[redisstore.Delete] %s", key)
	}
	return nil
}

// Health checks the Redis connection
func (s *Store) Health(ctx context.Context) error {
	if s.client == nil {
		return errors.New("[redisstore.Health] redis client is nil")
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Health] ping")
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) key(key string) string {
	return s.prefix + key
}
