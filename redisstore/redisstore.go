// Package redisstore provides a gareporter.KeyValueStore backed by Redis, so that several
// processes or hosts can report under the same anonymous client ID.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix is prepended to every key.
	DefaultPrefix = "gareporter:"
	// DefaultTimeout bounds each Redis command, since KeyValueStore calls are synchronous.
	DefaultTimeout = 2 * time.Second
)

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every key. Defaults to DefaultPrefix.
	Prefix string
	// Timeout bounds each command. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Store is a KeyValueStore backed by a Redis client.
type Store struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// New returns a Store that uses client. The caller remains responsible for closing it.
func New(client redis.UniversalClient, opts Options) *Store {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Store{client: client, prefix: opts.Prefix, timeout: opts.Timeout}
}

// NewFromURL parses a redis:// URL and returns a Store with its own client.
func NewFromURL(url string, opts Options) (*Store, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return New(redis.NewClient(redisOpts), opts), nil
}

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value without expiry.
func (s *Store) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
