package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del catálogo. El servidor es la fuente de verdad;
// esta copia vive lo que dura la petición.
type Article struct {
	ID                int64
	Name              string
	Description       string
	SalePrice         decimal.Decimal
	StorageCost       decimal.Decimal
	Stock             int   // stock actual, nunca negativo
	Demand            int   // demanda anual
	MaxInventory      int   // techo (inventario máximo), > 0
	DefaultSupplierID int64 // 0 = sin proveedor predeterminado
	Active            bool
	DeletedAt         *time.Time
}

// HasDefaultSupplier indica si el artículo tiene proveedor predeterminado.
func (a Article) HasDefaultSupplier() bool { return a.DefaultSupplierID > 0 }

// Headroom devuelve cuántas unidades faltan para llegar al techo.
func (a Article) Headroom() int {
	h := a.MaxInventory - a.Stock
	if h < 0 {
		return 0
	}
	return h
}

// Supplier representa un proveedor.
type Supplier struct {
	ID        int64
	Name      string
	TaxID     string // CUIT / NIT
	Phone     string
	Email     string
	Active    bool
	DeletedAt *time.Time
}
