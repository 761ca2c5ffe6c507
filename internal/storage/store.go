// Package storage is the client's durable key/value storage, the terminal
// counterpart of a browser's localStorage. Values are opaque strings; callers
// own their encoding.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tourdesk/internal/domain"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = fmt.Errorf("storage: %w", domain.ErrNotFound)

// Store is a string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open builds the store named by kind. path is ignored for memory stores.
// The returned close function is always non-nil.
func Open(ctx context.Context, kind, path string, log *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }
	switch kind {
	case KindFile, "":
		s, err := NewFileStore(path, log)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case KindSQLite:
		s, err := NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case KindMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("storage: unknown kind %q", kind)
	}
}
