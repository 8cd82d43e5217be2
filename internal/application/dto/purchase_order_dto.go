package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetDraftLineRequest body para PUT /api/purchase-order-drafts/:id/lines/:articleId.
// Quantity 0 usa la cantidad sugerida para el artículo.
type SetDraftLineRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// DraftLineResponse línea de un borrador.
type DraftLineResponse struct {
	ArticleID         int64  `json:"article_id"`
	ArticleName       string `json:"article_name"`
	Quantity          int    `json:"quantity"`
	DefaultSupplierID int64  `json:"default_supplier_id"`
	Suggested         bool   `json:"suggested"`
}

// DraftResponse borrador de orden de compra en composición.
type DraftResponse struct {
	ID         string              `json:"id"`
	State      string              `json:"state"`
	SupplierID int64               `json:"supplier_id,omitempty"`
	Lines      []DraftLineResponse `json:"lines"`
	LastError  string              `json:"last_error,omitempty"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderLineRequest par artículo-cantidad.
type OrderLineRequest struct {
	ArticleID int64 `json:"article_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// ModifyOrderRequest body para PUT /api/purchase-orders/:id. SupplierID 0 conserva el actual.
type ModifyOrderRequest struct {
	SupplierID int64              `json:"supplier_id" validate:"gte=0"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseOrderLineResponse línea de una orden.
type PurchaseOrderLineResponse struct {
	ArticleID   int64           `json:"article_id"`
	ArticleName string          `json:"article_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID            int64                       `json:"id"`
	SupplierID    int64                       `json:"supplier_id"`
	SupplierName  string                      `json:"supplier_name,omitempty"`
	Status        string                      `json:"status"`
	Lines         []PurchaseOrderLineResponse `json:"lines"`
	TotalAmount   decimal.Decimal             `json:"total_amount"`
	TotalQuantity int                         `json:"total_quantity"`
	PendingAt     *time.Time                  `json:"pending_at,omitempty"`
	ConfirmedAt   *time.Time                  `json:"confirmed_at,omitempty"`
	ReceivedAt    *time.Time                  `json:"received_at,omitempty"`
	CancelledAt   *time.Time                  `json:"cancelled_at,omitempty"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
