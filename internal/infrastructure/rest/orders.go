package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

func decodeOrders(ws []orderWire) []entity.PurchaseOrder {
	out := make([]entity.PurchaseOrder, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toEntity())
	}
	return out
}

func (c *Client) ListOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	var ws []orderWire
	if err := c.do(ctx, "ordenes.listar", http.MethodGet, "/ordenescompra", nil, &ws); err != nil {
		return nil, err
	}
	return decodeOrders(ws), nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	var w orderWire
	if err := c.do(ctx, "ordenes.obtener", http.MethodGet, fmt.Sprintf("/ordenescompra/%d", id), nil, &w); err != nil {
		return nil, err
	}
	o := w.toEntity()
	if o.ID == 0 {
		o.ID = id
	}
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error) {
	var w orderWire
	if err := c.do(ctx, "ordenes.crear", http.MethodPost, "/ordenescompra/crear", orderToWire(supplierID, lines), &w); err != nil {
		return nil, err
	}
	o := w.toEntity()
	return &o, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error) {
	var w orderWire
	path := fmt.Sprintf("/ordenescompra/modificar/%d", id)
	if err := c.do(ctx, "ordenes.modificar", http.MethodPut, path, orderToWire(supplierID, lines), &w); err != nil {
		return nil, err
	}
	o := w.toEntity()
	if o.ID == 0 {
		o.ID = id
	}
	return &o, nil
}

func (c *Client) transition(ctx context.Context, action string, id int64) error {
	path := fmt.Sprintf("/ordenescompra/%s/%d", action, id)
	return c.do(ctx, "ordenes."+action, http.MethodPut, path, nil, nil)
}

func (c *Client) ConfirmOrder(ctx context.Context, id int64) error {
	return c.transition(ctx, entity.ActionConfirm, id)
}

func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	return c.transition(ctx, entity.ActionCancel, id)
}

func (c *Client) FinalizeOrder(ctx context.Context, id int64) error {
	return c.transition(ctx, entity.ActionFinalize, id)
}

// ListActiveByArticle órdenes activas que incluyen el artículo. Un 404 equivale a ninguna.
// Se filtra por estado activo por si el servidor devuelve también órdenes cerradas.
func (c *Client) ListActiveByArticle(ctx context.Context, articleID int64) ([]entity.PurchaseOrder, error) {
	var ws []orderWire
	path := fmt.Sprintf("/ordenescompra/activasPorArticulo/%d", articleID)
	if err := c.do(ctx, "ordenes.activas_por_articulo", http.MethodGet, path, nil, &ws); err != nil {
		if isNotFound(err) {
			return []entity.PurchaseOrder{}, nil
		}
		return nil, err
	}
	all := decodeOrders(ws)
	active := all[:0]
	for _, o := range all {
		if o.Status.IsActive() {
			active = append(active, o)
		}
	}
	return active, nil
}
