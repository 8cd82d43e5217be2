package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/internal/infrastructure/rest"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recorded struct {
	Method    string
	Path      string
	RequestID string
	Body      map[string]any
}

// fakeUpstream servidor de inventario simulado: responde por "MÉTODO path" y registra cada petición.
type fakeUpstream struct {
	mu       sync.Mutex
	routes   map[string]func(w http.ResponseWriter)
	requests []recorded
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *rest.Client) {
	t.Helper()
	f := &fakeUpstream{routes: map[string]func(w http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recorded{Method: r.Method, Path: r.URL.RequestURI(), RequestID: r.Header.Get("X-Request-ID")}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		h, ok := f.routes[r.Method+" "+r.URL.RequestURI()]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"ruta no encontrada"}`))
			return
		}
		h(w)
	}))
	t.Cleanup(srv.Close)
	return f, rest.New(srv.URL, 2*time.Second, logger.Nop())
}

func (f *fakeUpstream) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeUpstream) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de campos
// ──────────────────────────────────────────────────────────────────────────────

func TestGetArticle_AceptaVariantesDeNombre(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/articulos/5", 200, `{
		"idArticulo": 5, "nombreArticulo": "Tornillo", "descripcionArticulo": "M8",
		"precioVentaArt": 12.5, "costoAlmacenamiento": "1.20", "stockActual": 7.0,
		"demandaArticulo": 300, "inventarioMaximo": 40,
		"idProveedorPredeterminado": 3, "estado": true, "fechaAlta": "2024-05-01T10:20:30"
	}`)

	a, err := c.GetArticle(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.ID)
	assert.Equal(t, "Tornillo", a.Name)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(a.SalePrice))
	assert.True(t, decimal.NewFromFloat(1.2).Equal(a.StorageCost))
	assert.Equal(t, 7, a.Stock)
	assert.Equal(t, 40, a.MaxInventory)
	assert.Equal(t, int64(3), a.DefaultSupplierID)
	assert.True(t, a.Active)
}

func TestListArticles_ProveedorAnidado(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/articulos", 200, `[
		{"id": 1, "nombreArticulo": "A", "proveedor": {"idProveedor": 9, "nombreProveedor": "P"}},
		{"id": 2, "nombreArticulo": "B", "proveedorPredeterminadoId": null, "estado": false}
	]`)

	as, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.Equal(t, int64(9), as[0].DefaultSupplierID)
	assert.False(t, as[1].HasDefaultSupplier())
	assert.False(t, as[1].Active)
}

func TestGetOrder_EstadoYLineasNormalizados(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/ordenescompra/11", 200, `{
		"idOrdenCompra": 11, "id_proveedor": 3, "estadoOrdenCompra": "Pendiente",
		"fechaPendiente": "2024-06-01T08:00:00.123",
		"articulosOrdenCompra": [
			{"id_articulo": 5, "cantidad": 4, "precioUnitarioOCA": 2.5},
			{"articulo": {"idArticulo": 6, "nombreArticulo": "Tuerca"}, "cantOCA": 2, "precioUnitarioOCA": 1}
		]
	}`)

	o, err := c.GetOrder(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, int64(3), o.SupplierID)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, int64(6), o.Lines[1].ArticleID)
	assert.Equal(t, "Tuerca", o.Lines[1].ArticleName)
	assert.Equal(t, 2, o.Lines[1].Quantity)
	assert.True(t, decimal.NewFromInt(12).Equal(o.TotalAmount))
	assert.Equal(t, 6, o.TotalQuantity)
	require.NotNil(t, o.PendingAt)
	assert.Equal(t, 2024, o.PendingAt.Year())
}

func TestGetOrder_Estados(t *testing.T) {
	cases := map[string]entity.OrderStatus{
		`"estado": "ENVIADA"`:    entity.OrderConfirmed,
		`"estado": "CANCELADA"`:  entity.OrderCancelled,
		`"estado": "finalizada"`: entity.OrderFinalized,
		`"estado": "PENDIENTE"`:  entity.OrderPending,
	}
	for field, want := range cases {
		f, c := newFakeUpstream(t)
		f.on("GET", "/ordenescompra/1", 200, `{"id": 1, `+field+`}`)
		o, err := c.GetOrder(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, want, o.Status, field)
	}
}

func TestListLinks_ModeloYCamposInactivos(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/articulo-proveedor", 200, `[
		{"id": 1, "articulo": {"id": 5}, "proveedor": {"id": 3, "nombreProveedor": "Acme"},
		 "precioUnitario": 10, "modeloInventario": "LOTE_FIJO", "puntoPedido": 12, "loteOptimo": 8,
		 "intervaloRevision": 30},
		{"id": 2, "idArticulo": 5, "idProveedor": 4, "costoCompra": 9,
		 "modeloInventario": "INTERVALO_FIJO", "intervaloRevision": 7, "inventarioMaximo": 50, "puntoPedido": 3}
	]`)

	ls, err := c.ListLinks(context.Background())
	require.NoError(t, err)
	require.Len(t, ls, 2)

	assert.Equal(t, int64(5), ls[0].ArticleID)
	assert.Equal(t, int64(3), ls[0].SupplierID)
	assert.Equal(t, "Acme", ls[0].SupplierName)
	assert.Equal(t, entity.ModelFixedLot, ls[0].Model)
	assert.Equal(t, 12, ls[0].ReorderPoint)
	assert.Zero(t, ls[0].ReviewIntervalDays)

	assert.Equal(t, entity.ModelFixedInterval, ls[1].Model)
	assert.True(t, decimal.NewFromInt(9).Equal(ls[1].UnitPrice))
	assert.Equal(t, 50, ls[1].MaxLevel)
	assert.Zero(t, ls[1].ReorderPoint)
}

func TestListLinks_ModeloNumericoYCamelCase(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/articulo-proveedor", 200, `[
		{"id": 1, "idArticulo": 5, "idProveedor": 3, "modeloInventario": 1, "inventarioMaximo": 20},
		{"id": 2, "idArticulo": 6, "idProveedor": 3, "modeloInventario": 0, "loteOptimo": 4},
		{"id": 3, "idArticulo": 7, "idProveedor": 3, "modeloInventario": "intervaloFijo"},
		{"id": 4, "idArticulo": 8, "idProveedor": 3, "modeloInventario": "loteFijo"},
		{"id": 5, "idArticulo": 9, "idProveedor": 3, "modeloInventario": "SEMANAL"},
		{"id": 6, "idArticulo": 10, "idProveedor": 3, "modeloInventario": 7},
		{"id": 7, "idArticulo": 11, "idProveedor": 3}
	]`)

	ls, err := c.ListLinks(context.Background())
	require.NoError(t, err)
	require.Len(t, ls, 7)

	assert.Equal(t, entity.ModelFixedInterval, ls[0].Model)
	assert.Equal(t, 20, ls[0].MaxLevel)
	assert.Equal(t, entity.ModelFixedLot, ls[1].Model)
	assert.Equal(t, entity.ModelFixedInterval, ls[2].Model)
	assert.Equal(t, entity.ModelFixedLot, ls[3].Model)
	// desconocidos: lote fijo con aviso en el log
	assert.Equal(t, entity.ModelFixedLot, ls[4].Model)
	assert.Equal(t, entity.ModelFixedLot, ls[5].Model)
	assert.Equal(t, entity.ModelFixedLot, ls[6].Model)
}

// ──────────────────────────────────────────────────────────────────────────────
// Payloads de salida
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_PayloadCanonico(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("POST", "/ordenescompra/crear", 201, `{"id": 20, "estado": "PENDIENTE", "id_proveedor": 3}`)

	o, err := c.CreateOrder(context.Background(), 3, []entity.OrderLineInput{{ArticleID: 5, Quantity: 8}})
	require.NoError(t, err)
	assert.Equal(t, int64(20), o.ID)

	req := f.last()
	assert.Equal(t, "POST", req.Method)
	assert.NotEmpty(t, req.RequestID)
	assert.EqualValues(t, 3, req.Body["id_proveedor"])
	lines := req.Body["articulosOrdenCompra"].([]any)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 5, lines[0].(map[string]any)["id_articulo"])
	assert.EqualValues(t, 8, lines[0].(map[string]any)["cantidad"])
}

func TestTransitions_RutasDelServidor(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("PUT", "/ordenescompra/confirmar/4", 200, ``)
	f.on("PUT", "/ordenescompra/cancelar/4", 200, `{}`)
	f.on("PUT", "/ordenescompra/finalizar/4", 200, `{"id": 4}`)

	ctx := context.Background()
	require.NoError(t, c.ConfirmOrder(ctx, 4))
	assert.Equal(t, "/ordenescompra/confirmar/4", f.last().Path)
	require.NoError(t, c.CancelOrder(ctx, 4))
	require.NoError(t, c.FinalizeOrder(ctx, 4))
	assert.Equal(t, "/ordenescompra/finalizar/4", f.last().Path)
}

func TestListLinksBySupplier_QueryString(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/articulo-proveedor/listado?proveedorId=3", 200, `[{"id": 1, "idArticulo": 5}]`)

	ls, err := c.ListLinksBySupplier(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, int64(3), ls[0].SupplierID)
}

func TestSetDefaultSupplier_Body(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("PUT", "/articulos/proveedor-predeterminado/5", 200, `{"id": 5}`)

	require.NoError(t, c.SetDefaultSupplier(context.Background(), 5, 3))
	assert.EqualValues(t, 3, f.last().Body["idProveedor"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_ErrorConMensajeDelServidor(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("PUT", "/ordenescompra/confirmar/9", 400, `{"message": "Solo se pueden confirmar órdenes en estado Pendiente"}`)

	err := c.ConfirmOrder(context.Background(), 9)
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 400, ge.Status)
	assert.Equal(t, "Solo se pueden confirmar órdenes en estado Pendiente", ge.Message)
	assert.Equal(t, "ordenes.confirmar", ge.Op)
	assert.Contains(t, ge.Error(), "HTTP 400")
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestDo_404EsNotFound(t *testing.T) {
	_, c := newFakeUpstream(t)

	_, err := c.GetArticle(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDo_CuerpoTextoPlano(t *testing.T) {
	f, c := newFakeUpstream(t)
	f.on("GET", "/proveedores/1", 500, `Internal failure`)

	_, err := c.GetSupplier(context.Background(), 1)
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Internal failure", ge.Message)
}

func TestDo_FallaDeTransporteConservaCausa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := rest.New(url, time.Second, logger.Nop())
	_, err := c.ListArticles(context.Background())

	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Zero(t, ge.Status)
	assert.NotNil(t, errors.Unwrap(ge))
}

func TestDo_ContextoCancelado(t *testing.T) {
	_, c := newFakeUpstream(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListOrders(ctx)
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListActiveByArticle_404EsListaVaciaYFiltraCerradas(t *testing.T) {
	f, c := newFakeUpstream(t)
	orders, err := c.ListActiveByArticle(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, orders)

	f.on("GET", "/ordenescompra/activasPorArticulo/2", 200, `[
		{"id": 1, "estado": "PENDIENTE"}, {"id": 2, "estado": "FINALIZADA"}, {"id": 3, "estado": "ENVIADA"}
	]`)
	orders, err = c.ListActiveByArticle(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

type spyRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (s *spyRecorder) ObserveGateway(resource, method string, status int, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, resource+" "+method+" "+http.StatusText(status))
}

func TestClient_RegistraMetricas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	spy := &spyRecorder{}
	c := rest.New(srv.URL, time.Second, logger.Nop(), rest.WithRecorder(spy))

	_, err := c.ListSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas GET OK"}, spy.calls)
}
