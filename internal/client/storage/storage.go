package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key namespaces. Each domain and league writes under its own key.
const (
	scoreboardPrefix = "rtg-scoreboard"
	NewsKey          = "rtg-news"
	FavoritesKey     = "rtg-favorites"
	NotificationsKey = "rtg-notification-preferences"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrNotConfigured is returned by methods on a nil store.
var ErrNotConfigured = errors.New("storage not configured")

// Store is a persistent string-keyed blob store owned by the client.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// ScoreboardKey returns the storage key for a league's last-good scoreboard.
func ScoreboardKey(league string) string {
	return scoreboardPrefix + ":" + strings.ToLower(strings.TrimSpace(league))
}

// GetJSON decodes the value stored at key. Missing keys, read failures and
// corrupt JSON all yield fallback.
func GetJSON[T any](ctx context.Context, s Store, key string, fallback T) T {
	if s == nil {
		return fallback
	}
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok || len(raw) == 0 {
		return fallback
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback
	}
	return out
}

// SetJSON encodes value and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	if s == nil {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// Open returns the store for backend. path is the directory for the file
// backend and the database file for sqlite.
func Open(ctx context.Context, backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
