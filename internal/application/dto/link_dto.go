package dto

import "github.com/shopspring/decimal"

// LinkRequest entrada para crear o modificar un vínculo artículo-proveedor.
// Los parámetros del modelo no elegido se ignoran.
type LinkRequest struct {
	ArticleID          int64           `json:"article_id" validate:"required,gt=0"`
	SupplierID         int64           `json:"supplier_id" validate:"required,gt=0"`
	UnitPrice          decimal.Decimal `json:"unit_price" validate:"gt=0"`
	OrderCost          decimal.Decimal `json:"order_cost" validate:"gte=0"`
	LeadTimeDays       int             `json:"lead_time_days" validate:"gte=0"`
	DemandStdDev       float64         `json:"demand_std_dev" validate:"gte=0"`
	Model              string          `json:"inventory_model" validate:"required,oneof=LOTE_FIJO INTERVALO_FIJO"`
	SafetyStock        int             `json:"safety_stock" validate:"gte=0"`
	ReorderPoint       int             `json:"reorder_point" validate:"gte=0"`
	OptimalLot         int             `json:"optimal_lot" validate:"gte=0"`
	ReviewIntervalDays int             `json:"review_interval_days" validate:"gte=0"`
	MaxLevel           int             `json:"max_level" validate:"gte=0"`
}

// LinkResponse salida de un vínculo artículo-proveedor.
type LinkResponse struct {
	ID                 int64           `json:"id"`
	ArticleID          int64           `json:"article_id"`
	SupplierID         int64           `json:"supplier_id"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	IsDefault          bool            `json:"is_default"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	OrderCost          decimal.Decimal `json:"order_cost"`
	LeadTimeDays       int             `json:"lead_time_days"`
	DemandStdDev       float64         `json:"demand_std_dev"`
	Model              string          `json:"inventory_model"`
	SafetyStock        int             `json:"safety_stock,omitempty"`
	ReorderPoint       int             `json:"reorder_point,omitempty"`
	OptimalLot         int             `json:"optimal_lot,omitempty"`
	ReviewIntervalDays int             `json:"review_interval_days,omitempty"`
	MaxLevel           int             `json:"max_level,omitempty"`
}
