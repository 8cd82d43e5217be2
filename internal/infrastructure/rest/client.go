package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa el puerto completo.
var _ ports.Gateway = (*Client)(nil)

const maxBodyBytes = 1 << 20

// Recorder recibe la métrica de cada llamada; *observability.Metrics lo implementa.
type Recorder interface {
	ObserveGateway(resource, method string, status int, elapsed time.Duration)
}

// Client adaptador HTTP JSON contra el servidor de inventario.
// Todas las respuestas se normalizan a entidades del dominio antes de salir del paquete.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	metrics    Recorder
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (pruebas, transportes propios).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRecorder registra métricas por llamada.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// New construye el cliente. timeout aplica a cada petición completa.
func New(baseURL string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do ejecuta la petición y decodifica la respuesta en out (puede ser nil).
// Cualquier falla se devuelve como *domain.GatewayError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &domain.GatewayError{Op: op, Method: method, Path: path, Err: fmt.Errorf("serializar request: %w", err)}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.GatewayError{Op: op, Method: method, Path: path, Err: fmt.Errorf("crear HTTP request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(path, method, 0, elapsed)
		cause := err
		if ctx.Err() != nil {
			cause = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		c.log.Error().Err(err).Str("request_id", requestID).Str("op", op).
			Str("method", method).Str("path", path).Msg("llamada al servidor sin respuesta")
		return &domain.GatewayError{Op: op, Method: method, Path: path, Err: cause}
	}
	defer resp.Body.Close()
	c.observe(path, method, resp.StatusCode, elapsed)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.GatewayError{Op: op, Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(raw)
		c.log.Warn().Str("request_id", requestID).Str("op", op).Str("method", method).
			Str("path", path).Int("status", resp.StatusCode).Str("message", msg).
			Dur("elapsed", elapsed).Msg("el servidor rechazó la petición")
		return &domain.GatewayError{Op: op, Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	c.log.Debug().Str("request_id", requestID).Str("op", op).Str("method", method).
		Str("path", path).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("gateway")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.GatewayError{Op: op, Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("deserializar respuesta: %w", err)}
	}
	return nil
}

func (c *Client) observe(path, method string, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveGateway(resourceOf(path), method, status, elapsed)
}

// resourceOf primer segmento del path: /ordenescompra/confirmar/3 -> ordenescompra.
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	return p
}

// errorMessage extrae el mensaje del cuerpo de error: {message}, {error}, {detail} o texto plano.
func errorMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Detail != "":
			return body.Detail
		case body.Error != "":
			return body.Error
		}
		if trimmed[0] == '{' {
			return ""
		}
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	msg := string(trimmed)
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}

// isNotFound para lecturas que tratan 404 como "sin datos".
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
