package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo.
type CreateArticleRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description" validate:"max=1000"`
	SalePrice         decimal.Decimal `json:"sale_price" validate:"gte=0"`
	StorageCost       decimal.Decimal `json:"storage_cost" validate:"gte=0"`
	Stock             int             `json:"stock" validate:"gte=0"`
	Demand            int             `json:"demand" validate:"gte=0"`
	MaxInventory      int             `json:"max_inventory" validate:"gt=0"`
	DefaultSupplierID int64           `json:"default_supplier_id" validate:"gte=0"`
}

// UpdateArticleRequest entrada para actualizar un artículo; campos nil no se modifican.
type UpdateArticleRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=1000"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	StorageCost  *decimal.Decimal `json:"storage_cost"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0"`
	Demand       *int             `json:"demand" validate:"omitempty,gte=0"`
	MaxInventory *int             `json:"max_inventory" validate:"omitempty,gt=0"`
}

// SetDefaultSupplierRequest body para PUT /api/articles/:id/default-supplier.
type SetDefaultSupplierRequest struct {
	SupplierID int64 `json:"supplier_id" validate:"required,gt=0"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	StorageCost       decimal.Decimal `json:"storage_cost"`
	Stock             int             `json:"stock"`
	Demand            int             `json:"demand"`
	MaxInventory      int             `json:"max_inventory"`
	DefaultSupplierID int64           `json:"default_supplier_id,omitempty"`
	Active            bool            `json:"active"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
