package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a small key/value store with expiring entries. Get returns "" and
// a nil error for a missing key.
type Cache interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Key(parts ...string) string
}

func joinKey(prefix string, parts []string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}
