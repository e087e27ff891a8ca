package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/idilsaglam/notes/internal/store"
)

// Options configures the Redis-backed slot.
type Options struct {
	Addr      string
	Password  string
	DB        int
	Namespace string // prefixed to every key, e.g. "notes:"
}

type Store struct {
	client    *redis.Client
	namespace string
}

var _ store.Slot = (*Store)(nil)

// New connects and pings the server so misconfiguration surfaces at startup.
func New(ctx context.Context, opt Options) (*Store, error) {
	addr := strings.TrimSpace(opt.Addr)
	if addr == "" {
		return nil, errors.New("redisstore: addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &Store{client: client, namespace: opt.Namespace}, nil
}

func (s *Store) key(k string) string { return s.namespace + k }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Set stores value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
