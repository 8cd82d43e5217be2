package purchasing

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/inventario-compras/internal/domain"
)

// KeyedGuard permite una sola operación a la vez por clave (borrador u orden).
// Una segunda operación concurrente sobre la misma clave falla en lugar de esperar.
type KeyedGuard struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// NewKeyedGuard construye el guard vacío.
func NewKeyedGuard() *KeyedGuard {
	return &KeyedGuard{sems: make(map[string]*semaphore.Weighted)}
}

// Acquire toma la clave o devuelve domain.ErrOperationInFlight si ya está tomada.
// El llamador debe invocar la función devuelta al terminar.
func (g *KeyedGuard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sem, ok := g.sems[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.sems[key] = sem
	}
	if !sem.TryAcquire(1) {
		return nil, domain.ErrOperationInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			sem.Release(1)
			delete(g.sems, key)
		})
	}, nil
}
