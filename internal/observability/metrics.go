package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas Prometheus de la aplicación sobre un registry propio.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	gatewayTotal    *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	ordersTotal     *prometheus.CounterVec
}

// NewMetrics inicializa el registry y las métricas base.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_http_requests_total",
		Help: "Peticiones HTTP atendidas por ruta y código.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventario_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	gateway := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_gateway_requests_total",
		Help: "Llamadas al servidor de inventario por recurso, método y código (0 = sin respuesta).",
	}, []string{"resource", "method", "code"})
	gatewayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventario_gateway_request_duration_seconds",
		Help:    "Latencia de las llamadas al servidor de inventario.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_purchase_order_operations_total",
		Help: "Operaciones sobre órdenes de compra por acción y resultado.",
	}, []string{"action", "result"})
	registry.MustRegister(requests, duration, gateway, gatewayDuration, orders)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		gatewayTotal:    gateway,
		gatewayDuration: gatewayDuration,
		ordersTotal:     orders,
	}
}

// Handler devuelve el http.Handler para /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registerer expone el registry para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// Middleware registra cada petición HTTP atendida por Fiber.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		m.requestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveGateway registra una llamada al servidor de inventario.
func (m *Metrics) ObserveGateway(resource, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.gatewayTotal.WithLabelValues(resource, method, strconv.Itoa(status)).Inc()
	m.gatewayDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// ObserveOrderOperation registra el resultado de crear, modificar o transicionar una orden.
func (m *Metrics) ObserveOrderOperation(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ordersTotal.WithLabelValues(action, result).Inc()
}
