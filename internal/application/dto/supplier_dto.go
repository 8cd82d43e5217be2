package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"required,min=1,max=20"`
	Phone string `json:"phone" validate:"omitempty,max=40"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor; campos nil no se modifican.
type UpdateSupplierRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID *string `json:"tax_id" validate:"omitempty,min=1,max=20"`
	Phone *string `json:"phone" validate:"omitempty,max=40"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	TaxID     string     `json:"tax_id"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Active    bool       `json:"active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// SupplierOptionResponse proveedor elegible para un artículo; el predeterminado va primero.
type SupplierOptionResponse struct {
	LinkID       int64           `json:"link_id"`
	SupplierID   int64           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	IsDefault    bool            `json:"is_default"`
	Model        string          `json:"inventory_model"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	OrderCost    decimal.Decimal `json:"order_cost"`
	LeadTimeDays int             `json:"lead_time_days"`
}
