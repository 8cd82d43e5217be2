package purchasing_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/inventario-compras/internal/application/inventory"
	"github.com/jhoicas/inventario-compras/internal/application/ports/portsfake"
	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/internal/infrastructure/draftstore"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type spyRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (s *spyRecorder) ObserveOrderOperation(action string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.calls = append(s.calls, action+":"+result)
}

func (s *spyRecorder) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type env struct {
	gw       *portsfake.Gateway
	store    *draftstore.MemoryStore
	composer *purchasing.Composer
	lc       *purchasing.LifecycleController
	metrics  *spyRecorder
}

// newEnv catálogo base:
//
//	1 Tornillo  stock 5  techo 20  proveedor 7  lote fijo (reorden 10, lote 8)
//	2 Tuerca    stock 3  techo 30  proveedor 8  lote fijo (reorden 6)
//	3 Arandela  sin proveedor predeterminado
func newEnv(t *testing.T) *env {
	t.Helper()
	gw := portsfake.New()
	gw.PutSupplier(entity.Supplier{ID: 7, Name: "Distribuidora Norte"})
	gw.PutSupplier(entity.Supplier{ID: 8, Name: "Mayorista Sur"})

	gw.PutArticle(entity.Article{ID: 1, Name: "Tornillo", Stock: 5, MaxInventory: 20, DefaultSupplierID: 7})
	gw.PutLink(entity.ArticleSupplier{ArticleID: 1, SupplierID: 7, Model: entity.ModelFixedLot, ReorderPoint: 10, OptimalLot: 8,
		UnitPrice: decimal.NewFromInt(2)})
	gw.PutLink(entity.ArticleSupplier{ArticleID: 1, SupplierID: 8, Model: entity.ModelFixedLot, ReorderPoint: 10,
		UnitPrice: decimal.NewFromInt(3)})

	gw.PutArticle(entity.Article{ID: 2, Name: "Tuerca", Stock: 3, MaxInventory: 30, DefaultSupplierID: 8})
	gw.PutLink(entity.ArticleSupplier{ArticleID: 2, SupplierID: 8, Model: entity.ModelFixedLot, ReorderPoint: 6,
		UnitPrice: decimal.NewFromInt(1)})

	gw.PutArticle(entity.Article{ID: 3, Name: "Arandela", Stock: 1, MaxInventory: 10})
	gw.PutLink(entity.ArticleSupplier{ArticleID: 3, SupplierID: 7, Model: entity.ModelFixedLot, ReorderPoint: 4})

	store := draftstore.NewMemoryStore(time.Hour)
	log := logger.Nop()
	guard := purchasing.NewKeyedGuard()
	validator := purchasing.NewOrderValidator(gw, gw)
	resolver := appinv.NewLinkResolver(gw, gw, gw)
	repl := appinv.NewReplenishmentUseCase(gw, gw)
	metrics := &spyRecorder{}

	return &env{
		gw:       gw,
		store:    store,
		composer: purchasing.NewComposer(store, gw, repl, validator, guard, log, purchasing.WithComposerMetrics(metrics)),
		lc:       purchasing.NewLifecycleController(gw, validator, resolver, guard, metrics, log),
		metrics:  metrics,
	}
}

func pendingOrder(id, supplierID int64, articleIDs ...int64) entity.PurchaseOrder {
	o := entity.PurchaseOrder{ID: id, SupplierID: supplierID, Status: entity.OrderPending}
	for _, a := range articleIDs {
		o.Lines = append(o.Lines, entity.PurchaseOrderLine{ArticleID: a, Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	}
	return o
}
