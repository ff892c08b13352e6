package store

import (
	"context"
	"sync"
	"time"

	"github.com/penshort/userlinks/internal/model"
)

// Memory is an in-process Store guarded by a single mutex.
// Every operation runs inside one critical section, so readers never
// observe a partially updated mapping.
type Memory struct {
	mu       sync.Mutex
	mappings map[string]*model.URLMapping
	now      func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty Memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		mappings: make(map[string]*model.URLMapping),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddMapping stores a fresh mapping, replacing any existing one for code.
func (m *Memory) AddMapping(_ context.Context, code, url string) (*model.URLMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping := &model.URLMapping{
		ShortCode:   code,
		OriginalURL: url,
		CreatedAt:   m.now().UTC(),
	}
	m.mappings[code] = mapping

	stored := *mapping
	return &stored, nil
}

// GetMapping returns a copy of the mapping for code.
func (m *Memory) GetMapping(_ context.Context, code string) (*model.URLMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping, ok := m.mappings[code]
	if !ok {
		return nil, ErrNotFound
	}

	found := *mapping
	return &found, nil
}

// IncrementClicks adds one click to the mapping for code.
func (m *Memory) IncrementClicks(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping, ok := m.mappings[code]
	if !ok {
		return false, nil
	}
	mapping.Clicks++
	return true, nil
}

// Snapshot copies all mappings.
func (m *Memory) Snapshot(_ context.Context) (map[string]model.URLMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]model.URLMapping, len(m.mappings))
	for code, mapping := range m.mappings {
		snapshot[code] = *mapping
	}
	return snapshot, nil
}

// Len returns the number of stored mappings.
func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.mappings), nil
}

// Ping always succeeds; it lets Memory serve as a readiness dependency.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}

var _ Store = (*Memory)(nil)
