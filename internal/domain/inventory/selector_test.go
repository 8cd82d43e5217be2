package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func article(id int64, stock, ceiling int, supplierID int64) entity.Article {
	return entity.Article{ID: id, Name: "art", Stock: stock, MaxInventory: ceiling, DefaultSupplierID: supplierID, Active: true}
}

func fixedLot(supplierID int64, reorder, lot int) *entity.ArticleSupplier {
	return &entity.ArticleSupplier{SupplierID: supplierID, Model: entity.ModelFixedLot, ReorderPoint: reorder, OptimalLot: lot}
}

func fixedInterval(supplierID int64, maxLevel int) *entity.ArticleSupplier {
	return &entity.ArticleSupplier{SupplierID: supplierID, Model: entity.ModelFixedInterval, ReviewIntervalDays: 7, MaxLevel: maxLevel}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggest_LoteFijo_LoteOptimoReemplazaDiferencia(t *testing.T) {
	s := inventory.Suggest(article(1, 5, 20, 7), fixedLot(7, 10, 8))

	require.True(t, s.OK())
	assert.Equal(t, 8, s.Quantity)
	assert.Equal(t, int64(7), s.SupplierID)
	assert.Equal(t, 13, s.ResultingStock)
	assert.NoError(t, s.Err())
}

func TestSuggest_LoteFijo_SinLoteOptimoPideDiferencia(t *testing.T) {
	s := inventory.Suggest(article(1, 4, 20, 7), fixedLot(7, 10, 0))

	require.True(t, s.OK())
	assert.Equal(t, 6, s.Quantity)
}

func TestSuggest_LoteFijo_UsaStockSeguridadSinPuntoPedido(t *testing.T) {
	link := &entity.ArticleSupplier{SupplierID: 7, Model: entity.ModelFixedLot, SafetyStock: 6}
	s := inventory.Suggest(article(1, 2, 20, 7), link)

	require.True(t, s.OK())
	assert.Equal(t, 6, s.Threshold)
	assert.Equal(t, 4, s.Quantity)
}

func TestSuggest_IntervaloFijo_HastaInventarioMaximo(t *testing.T) {
	s := inventory.Suggest(article(2, 18, 20, 7), fixedInterval(7, 20))

	require.True(t, s.OK())
	assert.Equal(t, 2, s.Quantity)
}

func TestSuggest_IntervaloFijo_NivelObjetivoMenorQueTecho(t *testing.T) {
	s := inventory.Suggest(article(2, 10, 30, 7), fixedInterval(7, 25))

	require.True(t, s.OK())
	assert.Equal(t, 15, s.Quantity)
}

func TestSuggest_SinProveedorPredeterminado(t *testing.T) {
	s := inventory.Suggest(article(3, 1, 20, 0), nil)

	assert.False(t, s.OK())
	assert.Equal(t, inventory.ReasonNoDefaultSupplier, s.Reason)

	var cw *domain.ConfigurationWarning
	require.ErrorAs(t, s.Err(), &cw)
	assert.Equal(t, int64(3), cw.ArticleID)
}

func TestSuggest_VinculoDeOtroProveedor(t *testing.T) {
	s := inventory.Suggest(article(3, 1, 20, 7), fixedLot(9, 10, 0))

	assert.Equal(t, inventory.ReasonNoDefaultSupplier, s.Reason)
}

func TestSuggest_LoteSuperaTecho(t *testing.T) {
	s := inventory.Suggest(article(4, 9, 12, 7), fixedLot(7, 10, 8))

	assert.False(t, s.OK())
	assert.Equal(t, inventory.ReasonExceedsCeiling, s.Reason)
	assert.Zero(t, s.Quantity)
	assert.Equal(t, 8, s.Proposed)

	var cv *domain.CeilingViolationError
	require.ErrorAs(t, s.Err(), &cv)
	assert.Equal(t, 17, cv.ResultingStock)
	assert.Equal(t, 12, cv.Ceiling)
}

func TestSuggest_YaSuficienteNoEsError(t *testing.T) {
	s := inventory.Suggest(article(5, 10, 20, 7), fixedLot(7, 10, 8))

	assert.Equal(t, inventory.ReasonAlreadySufficient, s.Reason)
	assert.True(t, errors.Is(s.Err(), domain.ErrNoReplenishmentNeeded))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggest_PropiedadStockSobreUmbralNuncaSugiere(t *testing.T) {
	for stock := 0; stock <= 40; stock++ {
		for _, reorder := range []int{0, 5, 10, 15} {
			s := inventory.Suggest(article(1, stock, 30, 7), fixedLot(7, reorder, 4))
			if stock >= reorder {
				assert.False(t, s.OK(), "stock %d reorden %d", stock, reorder)
				assert.Zero(t, s.Quantity)
			}
		}
		s := inventory.Suggest(article(1, stock, 30, 7), fixedInterval(7, 0))
		if stock >= 30 {
			assert.Equal(t, inventory.ReasonAlreadySufficient, s.Reason, "stock %d", stock)
		}
	}
}

func TestSuggest_PropiedadNuncaSuperaTecho(t *testing.T) {
	for stock := 0; stock <= 25; stock++ {
		for ceiling := 1; ceiling <= 25; ceiling++ {
			for _, link := range []*entity.ArticleSupplier{
				fixedLot(7, 10, 0), fixedLot(7, 10, 8), fixedLot(7, 20, 15), fixedInterval(7, 0), fixedInterval(7, 12),
			} {
				s := inventory.Suggest(article(1, stock, ceiling, 7), link)
				if s.Quantity > 0 {
					assert.LessOrEqual(t, stock+s.Quantity, ceiling)
				}
			}
		}
	}
}

func TestEstimatedOrderCost(t *testing.T) {
	got := inventory.EstimatedOrderCost(4, decimal.NewFromFloat(2.5), decimal.NewFromInt(3))
	assert.True(t, decimal.NewFromInt(13).Equal(got))
	assert.True(t, inventory.EstimatedOrderCost(0, decimal.NewFromInt(1), decimal.NewFromInt(3)).IsZero())
}
