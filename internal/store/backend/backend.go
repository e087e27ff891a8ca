// Package backend builds the storage slot selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/idilsaglam/notes/internal/auth"
	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/store"
	"github.com/idilsaglam/notes/internal/store/boltstore"
	"github.com/idilsaglam/notes/internal/store/jsonstore"
	"github.com/idilsaglam/notes/internal/store/redisstore"
)

func Open(ctx context.Context, cfg config.Config) (store.Slot, error) {
	switch cfg.Backend() {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendFile:
		dir, err := cfg.StorageDir()
		if err != nil {
			return nil, err
		}
		return jsonstore.New(dir)
	case config.BackendBolt:
		path, err := cfg.BoltPath()
		if err != nil {
			return nil, err
		}
		s, err := boltstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open bolt %s: %w", path, err)
		}
		return s, nil
	case config.BackendRedis:
		password, err := auth.Password()
		if err != nil {
			return nil, err
		}
		return redisstore.New(ctx, redisstore.Options{
			Addr:      cfg.RedisAddr(),
			Password:  password,
			DB:        cfg.Storage.Redis.DB,
			Namespace: cfg.RedisNamespace(),
		})
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
