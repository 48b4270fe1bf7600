// Package db is the storage adapter: a string-keyed store with sqlite, redis
// and in-memory backends, plus JSON helpers for the structured values kept in it.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired
var ErrKeyNotFound = errors.New("key not found")

// Keys used by the application.
const (
	KeyUsers     = "users"
	KeyAuditLogs = "auditLogs"
	KeySession   = "user"
)

// SessionTTL is how long a persisted session survives without a logout
const SessionTTL = 7 * 24 * time.Hour

// TasksKey returns the key holding the task list of username
func TasksKey(username string) string {
	return "tasks_" + username
}

// Store is the persistence port. A ttl of zero means the value never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value at key into dst. An absent key leaves dst untouched,
// so callers pre-fill it with their default.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and writes it at key, replacing the previous value
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
