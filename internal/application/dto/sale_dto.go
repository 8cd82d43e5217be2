package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Lines []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineResponse línea de una venta.
type SaleLineResponse struct {
	ArticleID   int64           `json:"article_id"`
	ArticleName string          `json:"article_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID    int64              `json:"id"`
	Date  time.Time          `json:"date"`
	Total decimal.Decimal    `json:"total"`
	Lines []SaleLineResponse `json:"lines"`
}
