// Package storage persists the board as JSON documents in a key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/poolboard/internal/config"
)

// Storage errors.
var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrClosed         = errors.New("storage is closed")
)

// KV is a minimal key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLite(cfg.DBPath)
	case config.BackendRedis:
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
