package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/domain"
)

func TestValidate_LinkRequestCamposInvalidos(t *testing.T) {
	err := dto.Validate(dto.LinkRequest{
		ArticleID:  1,
		SupplierID: 0,
		UnitPrice:  decimal.Zero,
		Model:      "OTRO",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	fields := map[string]string{}
	for _, it := range ve.Items {
		var fe *domain.FieldError
		require.ErrorAs(t, it, &fe)
		fields[fe.Field] = fe.Rule
	}
	assert.Equal(t, "required", fields["supplier_id"])
	assert.Equal(t, "gt", fields["unit_price"])
	assert.Equal(t, "oneof", fields["inventory_model"])
}

func TestValidate_ModifyOrderRequestDive(t *testing.T) {
	err := dto.Validate(dto.ModifyOrderRequest{Lines: []dto.OrderLineRequest{{ArticleID: 1, Quantity: 0}}})
	require.Error(t, err)

	assert.NoError(t, dto.Validate(dto.ModifyOrderRequest{Lines: []dto.OrderLineRequest{{ArticleID: 1, Quantity: 3}}}))
	assert.Error(t, dto.Validate(dto.ModifyOrderRequest{}))
}

func TestPageRequest_Bounds(t *testing.T) {
	p := dto.PageRequest{}
	p.DefaultPage()
	from, to := p.Bounds(5)
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, to)

	p = dto.PageRequest{Limit: 2, Offset: 4}
	from, to = p.Bounds(5)
	assert.Equal(t, 4, from)
	assert.Equal(t, 5, to)

	p = dto.PageRequest{Limit: 2, Offset: 10}
	from, to = p.Bounds(5)
	assert.Equal(t, 5, from)
	assert.Equal(t, 5, to)
}
