package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// Reason motivo por el que no se sugiere reponer. Vacío cuando la sugerencia es válida.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonAlreadySufficient Reason = "YA_SUFICIENTE"
	ReasonExceedsCeiling    Reason = "SUPERA_INVENTARIO_MAXIMO"
	ReasonNoDefaultSupplier Reason = "SIN_PROVEEDOR_PREDETERMINADO"
)

// Suggestion resultado del selector para un artículo.
// Quantity > 0 solo si Reason está vacío; Proposed conserva la cantidad calculada
// aunque se haya rechazado por superar el techo.
type Suggestion struct {
	ArticleID      int64
	ArticleName    string
	SupplierID     int64
	Model          entity.InventoryModel
	Stock          int
	Threshold      int // punto de pedido (lote fijo) o nivel objetivo (intervalo fijo)
	Ceiling        int
	Proposed       int
	Quantity       int
	ResultingStock int
	Reason         Reason
}

// OK indica si hay una cantidad positiva para pedir.
func (s Suggestion) OK() bool { return s.Reason == ReasonNone && s.Quantity > 0 }

// Err convierte el rechazo en el error de dominio correspondiente; nil si OK.
func (s Suggestion) Err() error {
	switch s.Reason {
	case ReasonNone:
		return nil
	case ReasonNoDefaultSupplier:
		return &domain.ConfigurationWarning{ArticleID: s.ArticleID, ArticleName: s.ArticleName}
	case ReasonExceedsCeiling:
		return &domain.CeilingViolationError{
			ArticleID:      s.ArticleID,
			ArticleName:    s.ArticleName,
			ResultingStock: s.ResultingStock,
			Ceiling:        s.Ceiling,
		}
	default:
		return fmt.Errorf("artículo %q (%d) con stock %d: %w", s.ArticleName, s.ArticleID, s.Stock, domain.ErrNoReplenishmentNeeded)
	}
}

// Suggest decide si conviene reponer el artículo y cuánto, según el vínculo con su
// proveedor predeterminado. defaultLink puede ser nil.
//
// Lote fijo: si stock < punto de pedido se pide la diferencia, o el lote óptimo si está definido.
// Sin punto de pedido se usa el stock de seguridad como umbral.
// Intervalo fijo: se pide hasta el inventario máximo (o el nivel objetivo del vínculo si es menor).
// Nunca se propone una cantidad que deje el stock por encima del inventario máximo.
func Suggest(a entity.Article, defaultLink *entity.ArticleSupplier) Suggestion {
	s := Suggestion{
		ArticleID:   a.ID,
		ArticleName: a.Name,
		Stock:       a.Stock,
		Ceiling:     a.MaxInventory,
	}
	if !a.HasDefaultSupplier() || defaultLink == nil || defaultLink.SupplierID != a.DefaultSupplierID {
		s.Reason = ReasonNoDefaultSupplier
		return s
	}
	s.SupplierID = defaultLink.SupplierID
	s.Model = defaultLink.Model

	switch defaultLink.Model {
	case entity.ModelFixedInterval:
		s.Threshold = a.MaxInventory
		if defaultLink.MaxLevel > 0 && defaultLink.MaxLevel < a.MaxInventory {
			s.Threshold = defaultLink.MaxLevel
		}
		if a.Stock < s.Threshold {
			s.Proposed = s.Threshold - a.Stock
		}
	default:
		s.Threshold = defaultLink.ReorderPoint
		if s.Threshold <= 0 {
			s.Threshold = defaultLink.SafetyStock
		}
		if a.Stock < s.Threshold {
			s.Proposed = s.Threshold - a.Stock
			if defaultLink.OptimalLot > 0 {
				s.Proposed = defaultLink.OptimalLot
			}
		}
	}

	if s.Proposed <= 0 {
		s.Proposed = 0
		s.ResultingStock = a.Stock
		s.Reason = ReasonAlreadySufficient
		return s
	}
	s.ResultingStock = a.Stock + s.Proposed
	if s.ResultingStock > a.MaxInventory {
		s.Reason = ReasonExceedsCeiling
		return s
	}
	s.Quantity = s.Proposed
	return s
}
