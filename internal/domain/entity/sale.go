package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine línea de una venta.
type SaleLine struct {
	ArticleID   int64
	ArticleName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Sale venta registrada; descuenta stock en el servidor.
type Sale struct {
	ID    int64
	Date  time.Time
	Total decimal.Decimal
	Lines []SaleLine
}
