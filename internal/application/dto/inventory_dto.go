package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionDTO sugerencia de reposición para un artículo.
// Cuando Reason no está vacío no hay cantidad sugerida y Message explica el motivo.
type ReplenishmentSuggestionDTO struct {
	ArticleID          int64           `json:"article_id"`
	ArticleName        string          `json:"article_name"`
	SupplierID         int64           `json:"supplier_id,omitempty"`
	Model              string          `json:"inventory_model,omitempty"`
	CurrentStock       int             `json:"current_stock"`
	Threshold          int             `json:"threshold"` // punto de pedido o nivel objetivo
	MaxInventory       int             `json:"max_inventory"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`
	ResultingStock     int             `json:"resulting_stock"`
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio del proveedor predeterminado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // cantidad * precio + costo de pedido
	Reason             string          `json:"reason,omitempty"`
	Message            string          `json:"message,omitempty"`
	Priority           int             `json:"priority,omitempty"` // 1 = más urgente
}

// MissingArticleDTO artículo por debajo de su stock de seguridad.
type MissingArticleDTO struct {
	ArticleID         int64  `json:"article_id"`
	ArticleName       string `json:"article_name"`
	CurrentStock      int    `json:"current_stock"`
	SafetyStock       int    `json:"safety_stock"`
	MaxInventory      int    `json:"max_inventory"`
	Headroom          int    `json:"headroom"` // unidades hasta el techo
	DefaultSupplierID int64  `json:"default_supplier_id,omitempty"`
}
