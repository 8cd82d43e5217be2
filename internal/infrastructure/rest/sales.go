package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

func (c *Client) ListSales(ctx context.Context) ([]entity.Sale, error) {
	var ws []saleWire
	if err := c.do(ctx, "ventas.listar", http.MethodGet, "/ventas", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]entity.Sale, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *Client) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	var w saleWire
	if err := c.do(ctx, "ventas.obtener", http.MethodGet, fmt.Sprintf("/ventas/%d", id), nil, &w); err != nil {
		return nil, err
	}
	s := w.toEntity()
	if s.ID == 0 {
		s.ID = id
	}
	return &s, nil
}

func (c *Client) CreateSale(ctx context.Context, lines []entity.OrderLineInput) (*entity.Sale, error) {
	var w saleWire
	if err := c.do(ctx, "ventas.crear", http.MethodPost, "/ventas/crear", saleToWire(lines), &w); err != nil {
		return nil, err
	}
	s := w.toEntity()
	return &s, nil
}
