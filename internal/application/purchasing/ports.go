package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/internal/domain/inventory"
)

// Suggester cantidad sugerida de reposición para un artículo (lo implementa el caso de uso de reposición).
type Suggester interface {
	Suggest(ctx context.Context, articleID int64) (inventory.Suggestion, *entity.ArticleSupplier, error)
}

// OperationRecorder registra el resultado de cada operación sobre órdenes (métricas).
type OperationRecorder interface {
	ObserveOrderOperation(action string, err error)
}

// OrderPDFGenerator produce el documento PDF de una orden de compra.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// OrderDocument datos que necesita el generador de PDF.
type OrderDocument struct {
	Order      entity.PurchaseOrder
	Supplier   entity.Supplier
	IssuedAt   time.Time
	IssuerName string
}

type nopRecorder struct{}

func (nopRecorder) ObserveOrderOperation(string, error) {}
