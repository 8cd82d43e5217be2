package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// AddArticle
// ──────────────────────────────────────────────────────────────────────────────

func TestAddArticle_PrimerArticuloFijaProveedor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, err := e.composer.NewDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(purchasing.DraftEmpty), d.State)

	d, err = e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, string(purchasing.DraftComposing), d.State)
	assert.Equal(t, int64(7), d.SupplierID)

	// proveedor predeterminado distinto: se acepta pero no cambia el fijado
	d, err = e.composer.AddArticle(ctx, d.ID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.SupplierID)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, int64(8), d.Lines[1].DefaultSupplierID)
	assert.Zero(t, e.gw.Mutations())
}

func TestAddArticle_SinProveedorPredeterminado_BorradorIntacto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	before, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)

	_, err = e.composer.AddArticle(ctx, d.ID, 3, 2)
	require.Error(t, err)
	var cw *domain.ConfigurationWarning
	require.ErrorAs(t, err, &cw)
	assert.Equal(t, int64(3), cw.ArticleID)
	assert.Contains(t, err.Error(), "Arandela")

	after, err := e.composer.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddArticle_OrdenActivaConProveedorPredeterminado(t *testing.T) {
	e := newEnv(t)
	e.gw.PutOrder(pendingOrder(50, 7, 1))
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	var dup *domain.DuplicateActiveOrderWarning
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(50), dup.OrderID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	got, _ := e.composer.GetDraft(ctx, d.ID)
	assert.Equal(t, string(purchasing.DraftEmpty), got.State)
	assert.Empty(t, got.Lines)
}

func TestAddArticle_OrdenesQueNoBloquean(t *testing.T) {
	e := newEnv(t)
	cancelled := pendingOrder(51, 7, 1)
	cancelled.Status = entity.OrderCancelled
	e.gw.PutOrder(cancelled)
	e.gw.PutOrder(pendingOrder(52, 8, 1)) // otro proveedor
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	assert.NoError(t, err)
}

func TestAddArticle_CantidadCeroUsaSugerencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	d, err := e.composer.AddArticle(ctx, d.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, 8, d.Lines[0].Quantity)
	assert.True(t, d.Lines[0].Suggested)
}

func TestAddArticle_CantidadCeroSinNecesidad(t *testing.T) {
	e := newEnv(t)
	e.gw.SetStock(1, 12)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	_, err := e.composer.AddArticle(ctx, d.ID, 1, 0)
	assert.ErrorIs(t, err, domain.ErrNoReplenishmentNeeded)
}

func TestAddArticle_ReemplazaCantidad(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)

	d, err = e.composer.AddArticle(ctx, d.ID, 1, 6)
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, 6, d.Lines[0].Quantity)
}

func TestAddArticle_CantidadNegativa(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	_, err := e.composer.AddArticle(ctx, d.ID, 1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddArticle_BorradorInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.composer.AddArticle(context.Background(), "no-existe", 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity / RemoveArticle / Discard
// ──────────────────────────────────────────────────────────────────────────────

func TestSetQuantity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 0)
	require.NoError(t, err)

	d, err = e.composer.SetQuantity(ctx, d.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Lines[0].Quantity)
	assert.False(t, d.Lines[0].Suggested)

	_, err = e.composer.SetQuantity(ctx, d.ID, 2, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.composer.SetQuantity(ctx, d.ID, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveArticle_UltimoVuelveAVacio(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)
	_, err = e.composer.AddArticle(ctx, d.ID, 2, 3)
	require.NoError(t, err)

	d, err = e.composer.RemoveArticle(ctx, d.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(purchasing.DraftComposing), d.State)
	assert.Equal(t, int64(7), d.SupplierID)

	d, err = e.composer.RemoveArticle(ctx, d.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, string(purchasing.DraftEmpty), d.State)
	assert.Zero(t, d.SupplierID)
	assert.Empty(t, d.Lines)

	_, err = e.composer.RemoveArticle(ctx, d.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	require.NoError(t, e.composer.Discard(ctx, d.ID))
	_, err := e.composer.GetDraft(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, e.composer.Discard(ctx, d.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CreaOrdenConProveedorFijadoYVacia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 8)
	require.NoError(t, err)
	_, err = e.composer.AddArticle(ctx, d.ID, 2, 3)
	require.NoError(t, err)

	order, err := e.composer.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.SupplierID)
	assert.Equal(t, string(entity.OrderPending), order.Status)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 1, e.gw.CallCount("CreateOrder"))
	assert.Equal(t, 1, e.gw.Mutations())

	after, _ := e.composer.GetDraft(ctx, d.ID)
	assert.Equal(t, string(purchasing.DraftEmpty), after.State)
	assert.Empty(t, after.Lines)
	assert.Zero(t, after.SupplierID)
	assert.Equal(t, []string{"crear:ok"}, e.metrics.Calls())
}

func TestSubmit_Vacio(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)

	_, err := e.composer.Submit(ctx, d.ID)
	var ve *domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, e.gw.CallCount("CreateOrder"))
}

// D (stock 10, techo 15) con 6 y E (stock 2, techo 20) con 5: solo D se rechaza,
// aunque D se haya agregado después de E.
func TestSubmit_TechoNombraSoloElArticuloQueLoSupera(t *testing.T) {
	e := newEnv(t)
	e.gw.PutArticle(entity.Article{ID: 4, Name: "D", Stock: 10, MaxInventory: 15, DefaultSupplierID: 7})
	e.gw.PutArticle(entity.Article{ID: 5, Name: "E", Stock: 2, MaxInventory: 20, DefaultSupplierID: 7})
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 5, 5)
	require.NoError(t, err)
	_, err = e.composer.AddArticle(ctx, d.ID, 4, 6)
	require.NoError(t, err, "el techo se valida al enviar")

	_, err = e.composer.Submit(ctx, d.ID)
	var ve *domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Items, 1)

	var cv *domain.CeilingViolationError
	require.ErrorAs(t, ve.Items[0], &cv)
	assert.Equal(t, int64(4), cv.ArticleID)
	assert.Equal(t, 16, cv.ResultingStock)
	assert.Equal(t, 15, cv.Ceiling)
	assert.Contains(t, err.Error(), "stock resultante 16 supera el inventario máximo 15")
	assert.Zero(t, e.gw.CallCount("CreateOrder"))

	after, _ := e.composer.GetDraft(ctx, d.ID)
	assert.Equal(t, string(purchasing.DraftComposing), after.State)
	assert.Len(t, after.Lines, 2)
	assert.NotEmpty(t, after.LastError)
	assert.Equal(t, []string{"crear:error"}, e.metrics.Calls())
}

func TestSubmit_RevalidaConStockActual(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 0) // sugiere 8: 5 + 8 <= 20
	require.NoError(t, err)

	e.gw.SetStock(1, 15) // otro cliente recibió mercadería
	_, err = e.composer.Submit(ctx, d.ID)
	var cv *domain.CeilingViolationError
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, 23, cv.ResultingStock)
}

func TestSubmit_AcumulaTodasLasFallas(t *testing.T) {
	e := newEnv(t)
	e.gw.PutArticle(entity.Article{ID: 4, Name: "D", Stock: 10, MaxInventory: 15, DefaultSupplierID: 7})
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)
	_, err = e.composer.AddArticle(ctx, d.ID, 4, 6)
	require.NoError(t, err)

	// después de seleccionar: aparece una orden activa y el artículo pierde su proveedor
	e.gw.PutOrder(pendingOrder(60, 7, 1))
	e.gw.PutArticle(entity.Article{ID: 4, Name: "D", Stock: 10, MaxInventory: 15})

	_, err = e.composer.Submit(ctx, d.ID)
	var ve *domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Items, 2)

	var dup *domain.DuplicateActiveOrderWarning
	assert.ErrorAs(t, ve.Items[0], &dup)
	var cw *domain.ConfigurationWarning
	assert.ErrorAs(t, ve.Items[1], &cw)
}

func TestSubmit_FallaServidorConservaSeleccion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)

	e.gw.Fail("CreateOrder", &domain.GatewayError{Op: "ordenes.crear", Status: 500, Message: "error interno"})
	_, err = e.composer.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	after, _ := e.composer.GetDraft(ctx, d.ID)
	assert.Equal(t, string(purchasing.DraftComposing), after.State)
	assert.Len(t, after.Lines, 1)
	assert.Contains(t, after.LastError, "error interno")

	// reintento sin volver a cargar datos
	e.gw.Fail("CreateOrder", nil)
	_, err = e.composer.Submit(ctx, d.ID)
	require.NoError(t, err)
}

func TestSubmit_DobleEnvioConcurrenteSeRechaza(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d, _ := e.composer.NewDraft(ctx)
	_, err := e.composer.AddArticle(ctx, d.ID, 1, 4)
	require.NoError(t, err)

	var (
		second    error
		duplicate error
	)
	e.gw.Before = func(method string) {
		if method == "CreateOrder" {
			_, second = e.composer.Submit(ctx, d.ID)
			_, duplicate = e.composer.AddArticle(ctx, d.ID, 2, 1)
		}
	}

	_, err = e.composer.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, second, domain.ErrOperationInFlight)
	assert.ErrorIs(t, duplicate, domain.ErrOperationInFlight)
	assert.Equal(t, 1, e.gw.CallCount("CreateOrder"))
}

func TestSubmit_EstadoEnviandoPersistidoBloquea(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	since := time.Now()
	require.NoError(t, e.store.Save(ctx, &purchasing.Draft{ID: "otra-instancia", State: purchasing.DraftSubmitting, SupplierID: 7,
		Lines: []purchasing.DraftLine{{ArticleID: 1, Quantity: 2}}, SubmittingSince: &since}))

	_, err := e.composer.Submit(ctx, "otra-instancia")
	assert.ErrorIs(t, err, domain.ErrOperationInFlight)
	_, err = e.composer.RemoveArticle(ctx, "otra-instancia", 1)
	assert.ErrorIs(t, err, domain.ErrOperationInFlight)
}
