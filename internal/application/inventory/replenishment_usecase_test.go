package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/application/inventory"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-compras/internal/domain/inventory"
)

func TestSuggest_UsaVinculoPredeterminado(t *testing.T) {
	g := seed()
	uc := inventory.NewReplenishmentUseCase(g, g)

	s, link, err := uc.Suggest(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, int64(8), link.SupplierID)
	assert.True(t, s.OK())
	assert.Equal(t, 8, s.Quantity)
}

func TestSuggest_SinProveedorPredeterminado(t *testing.T) {
	g := seed()
	g.PutArticle(entity.Article{ID: 2, Name: "Tuerca", Stock: 1, MaxInventory: 10})
	g.PutLink(entity.ArticleSupplier{ArticleID: 2, SupplierID: 7, Model: entity.ModelFixedLot, ReorderPoint: 5})
	uc := inventory.NewReplenishmentUseCase(g, g)

	s, link, err := uc.Suggest(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, link)
	assert.Equal(t, domaininv.ReasonNoDefaultSupplier, s.Reason)

	var cw *domain.ConfigurationWarning
	assert.True(t, errors.As(s.Err(), &cw))
}

func TestSuggestDTO_CostoEstimado(t *testing.T) {
	g := seed()
	uc := inventory.NewReplenishmentUseCase(g, g)

	out, err := uc.SuggestDTO(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, out.SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(2).Equal(out.UnitCost))
	// 8 * 2 + 10
	assert.True(t, decimal.NewFromInt(26).Equal(out.EstimatedOrderCost), out.EstimatedOrderCost.String())
	assert.Empty(t, out.Reason)
	assert.Empty(t, out.Message)
}

func TestGenerateReplenishmentList_OrdenYPrioridad(t *testing.T) {
	g := seed()
	// Supera el techo: 2 + 12 > 10
	g.PutArticle(entity.Article{ID: 4, Name: "Bisagra", Stock: 2, MaxInventory: 10, DefaultSupplierID: 7})
	g.PutLink(entity.ArticleSupplier{ArticleID: 4, SupplierID: 7, Model: entity.ModelFixedLot, ReorderPoint: 6, OptimalLot: 12})
	// Intervalo fijo hasta 30
	g.PutArticle(entity.Article{ID: 5, Name: "Cable", Stock: 0, MaxInventory: 50, DefaultSupplierID: 7})
	g.PutLink(entity.ArticleSupplier{ArticleID: 5, SupplierID: 7, Model: entity.ModelFixedInterval, ReviewIntervalDays: 7, MaxLevel: 30})
	uc := inventory.NewReplenishmentUseCase(g, g)

	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, int64(5), list[0].ArticleID)
	assert.Equal(t, 30, list[0].SuggestedOrderQty)
	assert.Equal(t, int64(1), list[1].ArticleID)
	assert.Equal(t, int64(4), list[2].ArticleID)
	assert.Equal(t, string(domaininv.ReasonExceedsCeiling), list[2].Reason)
	assert.Zero(t, list[2].SuggestedOrderQty)
	assert.Contains(t, list[2].Message, "supera el inventario máximo")

	for i, s := range list {
		assert.Equal(t, i+1, s.Priority)
	}
	assert.Equal(t, 1, g.CallCount("ListLinks"))
}

func TestGenerateReplenishmentList_SinCandidatos(t *testing.T) {
	g := seed()
	g.SetStock(1, 15)
	uc := inventory.NewReplenishmentUseCase(g, g)

	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, g.CallCount("ListLinks"))
}

func TestGenerateReplenishmentList_FallaGateway(t *testing.T) {
	g := seed()
	g.Fail("ListToReplenish", &domain.GatewayError{Op: "articulos.reponer", Status: 503})
	uc := inventory.NewReplenishmentUseCase(g, g)

	_, err := uc.GenerateReplenishmentList(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestListMissing_StockDeSeguridadDelPredeterminado(t *testing.T) {
	g := seed()
	g.PutArticle(entity.Article{ID: 6, Name: "Clavo", Stock: 1, MaxInventory: 40, DefaultSupplierID: 9})
	g.PutLink(entity.ArticleSupplier{ArticleID: 6, SupplierID: 7, Model: entity.ModelFixedLot, SafetyStock: 2})
	g.PutLink(entity.ArticleSupplier{ArticleID: 6, SupplierID: 9, Model: entity.ModelFixedLot, SafetyStock: 5})
	uc := inventory.NewReplenishmentUseCase(g, g)

	list, err := uc.ListMissing(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(6), list[0].ArticleID)
	assert.Equal(t, 5, list[0].SafetyStock)
	assert.Equal(t, 39, list[0].Headroom)
	assert.Equal(t, int64(9), list[0].DefaultSupplierID)
}
