package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

func (c *Client) decodeLinks(ws []linkWire) []entity.ArticleSupplier {
	out := make([]entity.ArticleSupplier, 0, len(ws))
	for _, w := range ws {
		out = append(out, c.decodeLink(w))
	}
	return out
}

// decodeLink normaliza el vínculo y avisa si el modelo de inventario no se reconoce.
func (c *Client) decodeLink(w linkWire) entity.ArticleSupplier {
	l := w.toEntity()
	if _, ok := parseModel(w.Modelo); !ok {
		c.log.Warn().Int64("link_id", l.ID).Str("modelo", string(w.Modelo)).Msg("modelo de inventario desconocido, se asume lote fijo")
	}
	return l
}

// ListLinks todos los vínculos, en el orden en que los devuelve el servidor.
func (c *Client) ListLinks(ctx context.Context) ([]entity.ArticleSupplier, error) {
	var ws []linkWire
	if err := c.do(ctx, "articulo_proveedor.listar", http.MethodGet, "/articulo-proveedor", nil, &ws); err != nil {
		return nil, err
	}
	return c.decodeLinks(ws), nil
}

func (c *Client) ListLinksBySupplier(ctx context.Context, supplierID int64) ([]entity.ArticleSupplier, error) {
	var ws []linkWire
	q := url.Values{"proveedorId": []string{strconv.FormatInt(supplierID, 10)}}
	path := "/articulo-proveedor/listado?" + q.Encode()
	if err := c.do(ctx, "articulo_proveedor.listado", http.MethodGet, path, nil, &ws); err != nil {
		return nil, err
	}
	links := c.decodeLinks(ws)
	for i := range links {
		if links[i].SupplierID == 0 {
			links[i].SupplierID = supplierID
		}
	}
	return links, nil
}

func (c *Client) CreateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error) {
	var w linkWire
	if err := c.do(ctx, "articulo_proveedor.crear", http.MethodPost, "/articulo-proveedor/crear", linkToWire(l), &w); err != nil {
		return nil, err
	}
	created := c.decodeLink(w)
	return &created, nil
}

func (c *Client) UpdateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error) {
	var w linkWire
	path := fmt.Sprintf("/articulo-proveedor/modificar/%d", l.ID)
	if err := c.do(ctx, "articulo_proveedor.modificar", http.MethodPut, path, linkToWire(l), &w); err != nil {
		return nil, err
	}
	updated := c.decodeLink(w)
	if updated.ID == 0 {
		updated.ID = l.ID
	}
	return &updated, nil
}
