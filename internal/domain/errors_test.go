package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/domain"
)

func TestGatewayError_IsNotFoundSolo404(t *testing.T) {
	notFound := &domain.GatewayError{Op: "articulos.obtener", Status: 404}
	badReq := &domain.GatewayError{Op: "articulos.obtener", Status: 400, Message: "inválido"}

	assert.True(t, errors.Is(notFound, domain.ErrNotFound))
	assert.False(t, errors.Is(badReq, domain.ErrNotFound))
	assert.True(t, errors.Is(badReq, domain.ErrUpstream))
	assert.Equal(t, "gateway articulos.obtener: HTTP 400: inválido", badReq.Error())
}

func TestGatewayError_ConservaCausa(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("listar: %w", &domain.GatewayError{Op: "articulos.listar", Err: cause})

	assert.ErrorIs(t, err, cause)
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Zero(t, ge.Status)
}

func TestCeilingViolationError_Mensaje(t *testing.T) {
	err := &domain.CeilingViolationError{ArticleID: 4, ArticleName: "D", ResultingStock: 16, Ceiling: 15}
	assert.Contains(t, err.Error(), "stock resultante 16 supera el inventario máximo 15")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIllegalTransitionError_NombraEstadoActual(t *testing.T) {
	err := &domain.IllegalTransitionError{OrderID: 3, Current: "CANCELADA", Attempted: "confirmar"}
	assert.Equal(t, "no se puede confirmar la orden 3: estado actual CANCELADA", err.Error())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestValidationErrors_AgregaYExpone(t *testing.T) {
	var v domain.ValidationErrors
	assert.NoError(t, v.ErrOrNil())

	v.Add(nil)
	v.Add(&domain.ConfigurationWarning{ArticleID: 1, ArticleName: "C"})
	v.Add(&domain.DuplicateActiveOrderWarning{ArticleID: 2, ArticleName: "X", OrderID: 9})
	err := v.ErrOrNil()
	require.Error(t, err)
	require.Len(t, v.Items, 2)

	var dup *domain.DuplicateActiveOrderWarning
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(9), dup.OrderID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
