package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de una orden de compra.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDIENTE"
	OrderConfirmed OrderStatus = "ENVIADA"
	OrderCancelled OrderStatus = "CANCELADA"
	OrderFinalized OrderStatus = "FINALIZADA"
)

// Acciones del ciclo de vida.
const (
	ActionConfirm  = "confirmar"
	ActionCancel   = "cancelar"
	ActionFinalize = "finalizar"
	ActionModify   = "modificar"
)

var orderTransitions = map[string]struct {
	from OrderStatus
	to   OrderStatus
}{
	ActionConfirm:  {OrderPending, OrderConfirmed},
	ActionCancel:   {OrderPending, OrderCancelled},
	ActionFinalize: {OrderConfirmed, OrderFinalized},
	ActionModify:   {OrderPending, OrderPending},
}

// Allows indica si la acción es legal desde el estado actual.
func (s OrderStatus) Allows(action string) bool {
	t, ok := orderTransitions[action]
	return ok && t.from == s
}

// Next devuelve el estado al que lleva la acción (sin validar el origen).
func (s OrderStatus) Next(action string) OrderStatus {
	if t, ok := orderTransitions[action]; ok {
		return t.to
	}
	return s
}

// IsActive: pendiente o enviada (ni finalizada ni cancelada).
func (s OrderStatus) IsActive() bool {
	return s == OrderPending || s == OrderConfirmed
}

func (s OrderStatus) String() string { return string(s) }

// PurchaseOrderLine línea de una orden de compra.
type PurchaseOrderLine struct {
	ArticleID   int64
	ArticleName string
	Quantity    int
	UnitPrice   decimal.Decimal // precio al momento de la orden
	Subtotal    decimal.Decimal
}

// PurchaseOrder cabecera de una orden de compra con sus líneas.
type PurchaseOrder struct {
	ID            int64
	SupplierID    int64
	SupplierName  string
	Status        OrderStatus
	Lines         []PurchaseOrderLine
	TotalAmount   decimal.Decimal
	TotalQuantity int
	PendingAt     *time.Time
	ConfirmedAt   *time.Time
	ReceivedAt    *time.Time
	CancelledAt   *time.Time
}

// HasArticle indica si la orden incluye el artículo.
func (o PurchaseOrder) HasArticle(articleID int64) bool {
	for _, l := range o.Lines {
		if l.ArticleID == articleID {
			return true
		}
	}
	return false
}

// ComputeTotals recalcula subtotales y totales cuando el servidor no los envía.
func (o *PurchaseOrder) ComputeTotals() {
	total := decimal.Zero
	qty := 0
	for i := range o.Lines {
		l := &o.Lines[i]
		if l.Subtotal.IsZero() {
			l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		}
		total = total.Add(l.Subtotal)
		qty += l.Quantity
	}
	if o.TotalAmount.IsZero() {
		o.TotalAmount = total
	}
	if o.TotalQuantity == 0 {
		o.TotalQuantity = qty
	}
}

// OrderLineInput par (artículo, cantidad) para crear o modificar una orden.
type OrderLineInput struct {
	ArticleID int64
	Quantity  int
}
