package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

func (c *Client) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	var ws []supplierWire
	if err := c.do(ctx, "proveedores.listar", http.MethodGet, "/proveedores", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]entity.Supplier, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error) {
	var w supplierWire
	if err := c.do(ctx, "proveedores.obtener", http.MethodGet, fmt.Sprintf("/proveedores/%d", id), nil, &w); err != nil {
		return nil, err
	}
	s := w.toEntity()
	if s.ID == 0 {
		s.ID = id
	}
	return &s, nil
}

func (c *Client) CreateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error) {
	var w supplierWire
	if err := c.do(ctx, "proveedores.crear", http.MethodPost, "/proveedores/crear", supplierToWire(s), &w); err != nil {
		return nil, err
	}
	created := w.toEntity()
	return &created, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error) {
	var w supplierWire
	path := fmt.Sprintf("/proveedores/modificar/%d", s.ID)
	if err := c.do(ctx, "proveedores.modificar", http.MethodPut, path, supplierToWire(s), &w); err != nil {
		return nil, err
	}
	updated := w.toEntity()
	if updated.ID == 0 {
		updated.ID = s.ID
	}
	return &updated, nil
}

// DeleteSupplier baja lógica.
func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.do(ctx, "proveedores.baja", http.MethodDelete, fmt.Sprintf("/proveedores/baja/%d", id), nil, nil)
}
