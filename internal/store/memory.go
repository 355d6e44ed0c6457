package store

import (
	"context"
	"sync"

	"github.com/aristide1997/version-vault/internal/core"
)

// MemoryStore is an in-process AppStore used by tests and the `memory`
// store kind. It mirrors the remote store's semantics: Create overwrites
// silently, callers pre-check existence.
type MemoryStore struct {
	mu   sync.RWMutex
	apps map[string]core.App
}

var _ core.AppStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		apps: make(map[string]core.App),
	}
}

func (s *MemoryStore) Get(_ context.Context, name string) (*core.App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.apps[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &app, nil
}

func (s *MemoryStore) Create(_ context.Context, app core.App) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apps[app.Name] = app
	return nil
}

func (s *MemoryStore) UpdateVersion(_ context.Context, name string, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[name]
	if !ok {
		return core.ErrNotFound
	}
	app.Version = version
	s.apps[name] = app
	return nil
}
