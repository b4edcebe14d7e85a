package cache

import (
	"context"
	"fmt"
	"strings"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string
	Redis   RedisConfig
}

// New returns the configured Store. The none backend yields a nil Store,
// which callers treat as "always miss".
func New(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		store, err := DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
