// Package draftstore persistencia de borradores de órdenes de compra (memoria o Redis).
package draftstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/domain"
)

var _ purchasing.DraftStore = (*MemoryStore)(nil)

type memItem struct {
	draft   *purchasing.Draft
	expires time.Time
}

// MemoryStore borradores en memoria del proceso; se pierden al reiniciar.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore crea el store. ttl <= 0 desactiva la expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*purchasing.Draft, error) {
	s.mu.RLock()
	it, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || s.expired(it) {
		return nil, fmt.Errorf("draftstore: borrador %s: %w", id, domain.ErrNotFound)
	}
	return it.draft.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, d *purchasing.Draft) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("draftstore: %w: borrador sin id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	it := memItem{draft: d.Clone()}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}
	s.items[d.ID] = it
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Len cantidad de borradores vigentes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		if !s.expired(it) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(it memItem) bool {
	return !it.expires.IsZero() && !s.now().Before(it.expires)
}

// sweep descarta vencidos; requiere el lock de escritura.
func (s *MemoryStore) sweep() {
	for id, it := range s.items {
		if s.expired(it) {
			delete(s.items, id)
		}
	}
}
