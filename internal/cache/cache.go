// Package cache stores rendered calculator results. Every entry can be
// recomputed from its key, so a miss or backend failure only costs time.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/calc-widgets/pkg/constants"
)

// Cache is a string key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Config selects and sizes a backend.
type Config struct {
	Backend       string
	TTL           time.Duration
	MaxEntries    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured backend.
func New(cfg Config) (Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = constants.DefaultCacheTTLSeconds * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", constants.CacheBackendNone:
		return Noop{}, nil
	case constants.CacheBackendMemory:
		return NewMemory(cfg.MaxEntries, cfg.TTL), nil
	case constants.CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key hashes parts into a fixed-length key. Parts are separated by a NUL so
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	return fmt.Sprintf("calc:%016x", xxhash.Sum64String(strings.Join(parts, "\x00")))
}

// Noop never stores anything.
type Noop struct{}

// Get implements Cache.
func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

// Set implements Cache.
func (Noop) Set(context.Context, string, string) error { return nil }

// Close implements Cache.
func (Noop) Close() error { return nil }
