// Package store persists application data as JSON values under string keys.
// Three backends share one interface: in-memory, a single JSON file, and SQLite.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-insight/internal/config"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("key not found")

// Store is a flat key/value namespace. Values are JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Open returns the backend named by driver. path is ignored for memory.
func Open(ctx context.Context, driver, path string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case config.DriverMemory:
		s = NewMemoryStore()
	case config.DriverFile:
		s, err = NewFileStore(path)
	case config.DriverSQLite:
		s, err = NewSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrDriverUnsupport, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}

	slog.Debug(config.MsgStoreOpened,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyDriver, driver,
		config.LogKeyPath, path)
	return s, nil
}

// GetJSON decodes the value at key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s %q: %w", config.ErrStoreDecode, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s %q: %w", config.ErrStoreEncode, key, err)
	}
	return s.Set(ctx, key, raw)
}
