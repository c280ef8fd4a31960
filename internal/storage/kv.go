// Package storage holds the key-value backends and the bookmark adapter built on them.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/meur/healthguide/internal/config"
)

// KV is a string key-value store
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend selected by cfg.Driver
func Open(cfg config.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return New(cfg.Path)
	case config.DriverRedis:
		return NewRedis(cfg.Redis)
	case config.DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// MemoryKV keeps values in process memory
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty MemoryKV
func NewMemory() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }
