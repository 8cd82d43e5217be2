package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrNoReplenishmentNeeded = errors.New("no se necesita reposición")
	ErrOperationInFlight     = errors.New("ya hay una operación en curso para este recurso")
	ErrUpstream              = errors.New("error del servidor de inventario")
)

// GatewayError normaliza una falla HTTP o de transporte contra el servidor de inventario.
// Status 0 indica que la petición no obtuvo respuesta.
type GatewayError struct {
	Op      string // operación lógica, ej. "ordenes.confirmar"
	Method  string
	Path    string
	Status  int
	Message string // mensaje del servidor si lo hubo
	Err     error  // causa original (transporte, decodificación)
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString("gateway ")
	b.WriteString(e.Op)
	if e.Status > 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrNotFound) para respuestas 404.
func (e *GatewayError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == 404
	case ErrUpstream:
		return true
	}
	return false
}

// NotFoundError indica que el recurso consultado no tiene datos para la operación.
type NotFoundError struct {
	Resource string
	ID       int64
	Reason   string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %d: %s", e.Resource, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %d no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConfigurationWarning: el artículo no tiene proveedor predeterminado asignado.
// Se resuelve asignando uno; reenviar no lo corrige.
type ConfigurationWarning struct {
	ArticleID   int64
	ArticleName string
}

func (e *ConfigurationWarning) Error() string {
	return fmt.Sprintf("el artículo %q (%d) no tiene proveedor predeterminado asignado", e.ArticleName, e.ArticleID)
}

func (e *ConfigurationWarning) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateActiveOrderWarning: ya existe una orden activa para el artículo y su proveedor predeterminado.
type DuplicateActiveOrderWarning struct {
	ArticleID   int64
	ArticleName string
	SupplierID  int64
	OrderID     int64
}

func (e *DuplicateActiveOrderWarning) Error() string {
	return fmt.Sprintf("el artículo %q (%d) ya tiene la orden activa %d con el proveedor %d",
		e.ArticleName, e.ArticleID, e.OrderID, e.SupplierID)
}

func (e *DuplicateActiveOrderWarning) Is(target error) bool { return target == ErrConflict }

// CeilingViolationError: el stock resultante superaría el inventario máximo del artículo.
type CeilingViolationError struct {
	ArticleID      int64
	ArticleName    string
	ResultingStock int
	Ceiling        int
}

func (e *CeilingViolationError) Error() string {
	return fmt.Sprintf("artículo %q (%d): stock resultante %d supera el inventario máximo %d",
		e.ArticleName, e.ArticleID, e.ResultingStock, e.Ceiling)
}

func (e *CeilingViolationError) Is(target error) bool { return target == ErrInvalidInput }

// IllegalTransitionError: la orden no está en un estado que permita la transición pedida.
// Current es siempre el estado re-consultado al servidor.
type IllegalTransitionError struct {
	OrderID   int64
	Current   string
	Attempted string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("no se puede %s la orden %d: estado actual %s", e.Attempted, e.OrderID, e.Current)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrConflict }

// InsufficientStockError: una venta pide más unidades de las disponibles.
type InsufficientStockError struct {
	ArticleID   int64
	ArticleName string
	Stock       int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el artículo %s. Stock actual: %d, cantidad solicitada: %d",
		e.ArticleName, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ValidationErrors agrupa todas las fallas de validación de un envío, una por artículo.
type ValidationErrors struct {
	Items []error
}

// Add agrega una falla; nil se ignora.
func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.Items = append(v.Items, err)
	}
}

// Empty indica si no hubo fallas.
func (v *ValidationErrors) Empty() bool { return v == nil || len(v.Items) == 0 }

// ErrOrNil devuelve el agregado solo si tiene fallas.
func (v *ValidationErrors) ErrOrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v.Items))
	for _, it := range v.Items {
		msgs = append(msgs, it.Error())
	}
	return "validación: " + strings.Join(msgs, "; ")
}

// Unwrap expone cada falla para errors.Is / errors.As.
func (v *ValidationErrors) Unwrap() []error { return v.Items }

// FieldError campo de entrada que no cumple una regla.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("campo %s: no cumple %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("campo %s: no cumple %s", e.Field, e.Rule)
}

func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }
