package observability

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGateway_CuentaPorRecursoYCodigo(t *testing.T) {
	m := NewMetrics()
	m.ObserveGateway("ordenescompra", "PUT", 200, 10*time.Millisecond)
	m.ObserveGateway("ordenescompra", "PUT", 200, 5*time.Millisecond)
	m.ObserveGateway("ordenescompra", "PUT", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayTotal.WithLabelValues("ordenescompra", "PUT", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayTotal.WithLabelValues("ordenescompra", "PUT", "0")))
}

func TestObserveOrderOperation(t *testing.T) {
	m := NewMetrics()
	m.ObserveOrderOperation("confirmar", nil)
	m.ObserveOrderOperation("confirmar", errors.New("x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("confirmar", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("confirmar", "error")))
}

func TestMetrics_NilEsSeguro(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGateway("articulos", "GET", 200, time.Millisecond)
		m.ObserveOrderOperation("crear", nil)
	})
}

func TestMiddleware_RegistraRuta(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/articles/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/articles/7", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/articles/:id", "GET", "204")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "inventario_http_requests_total")
}
