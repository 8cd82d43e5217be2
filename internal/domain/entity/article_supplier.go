package entity

import "github.com/shopspring/decimal"

// InventoryModel modelo de reposición elegido para un vínculo artículo-proveedor.
type InventoryModel string

const (
	ModelFixedLot      InventoryModel = "LOTE_FIJO"
	ModelFixedInterval InventoryModel = "INTERVALO_FIJO"
)

// Valid indica si el modelo es uno de los soportados.
func (m InventoryModel) Valid() bool {
	return m == ModelFixedLot || m == ModelFixedInterval
}

func (m InventoryModel) String() string { return string(m) }

// ArticleSupplier vincula un artículo con un proveedor y los parámetros del modelo de inventario.
// Solo los campos del modelo activo tienen valor; los del otro quedan en cero.
type ArticleSupplier struct {
	ID           int64
	ArticleID    int64
	SupplierID   int64
	SupplierName string
	UnitPrice    decimal.Decimal
	OrderCost    decimal.Decimal // costo por pedido
	LeadTimeDays int
	DemandStdDev float64
	Model        InventoryModel

	// Lote fijo
	SafetyStock  int
	ReorderPoint int
	OptimalLot   int

	// Intervalo fijo
	ReviewIntervalDays int
	MaxLevel           int // nivel máximo objetivo

	// IsDefault lo marca el resolvedor; el servidor no lo envía.
	IsDefault bool
}

// Normalize deja en cero los parámetros del modelo inactivo.
func (l *ArticleSupplier) Normalize() {
	switch l.Model {
	case ModelFixedLot:
		l.ReviewIntervalDays = 0
		l.MaxLevel = 0
	case ModelFixedInterval:
		l.SafetyStock = 0
		l.ReorderPoint = 0
		l.OptimalLot = 0
	}
}
