package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

func decodeArticles(ws []articleWire) []entity.Article {
	out := make([]entity.Article, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toEntity())
	}
	return out
}

// ListArticles artículos activos.
func (c *Client) ListArticles(ctx context.Context) ([]entity.Article, error) {
	var ws []articleWire
	if err := c.do(ctx, "articulos.listar", http.MethodGet, "/articulos", nil, &ws); err != nil {
		return nil, err
	}
	return decodeArticles(ws), nil
}

// GetArticle artículo por id; 404 -> error que satisface errors.Is(err, domain.ErrNotFound).
func (c *Client) GetArticle(ctx context.Context, id int64) (*entity.Article, error) {
	var w articleWire
	if err := c.do(ctx, "articulos.obtener", http.MethodGet, fmt.Sprintf("/articulos/%d", id), nil, &w); err != nil {
		return nil, err
	}
	a := w.toEntity()
	if a.ID == 0 {
		a.ID = id
	}
	return &a, nil
}

func (c *Client) CreateArticle(ctx context.Context, a entity.Article) (*entity.Article, error) {
	var w articleWire
	if err := c.do(ctx, "articulos.crear", http.MethodPost, "/articulos/crear", articleToWire(a), &w); err != nil {
		return nil, err
	}
	created := w.toEntity()
	return &created, nil
}

func (c *Client) UpdateArticle(ctx context.Context, a entity.Article) (*entity.Article, error) {
	var w articleWire
	path := fmt.Sprintf("/articulos/modificar/%d", a.ID)
	if err := c.do(ctx, "articulos.modificar", http.MethodPut, path, articleToWire(a), &w); err != nil {
		return nil, err
	}
	updated := w.toEntity()
	if updated.ID == 0 {
		updated.ID = a.ID
	}
	return &updated, nil
}

// DeleteArticle baja lógica.
func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.do(ctx, "articulos.baja", http.MethodDelete, fmt.Sprintf("/articulos/baja/%d", id), nil, nil)
}

func (c *Client) ListToReplenish(ctx context.Context) ([]entity.Article, error) {
	var ws []articleWire
	if err := c.do(ctx, "articulos.reponer", http.MethodGet, "/articulos/articulos-reponer", nil, &ws); err != nil {
		return nil, err
	}
	return decodeArticles(ws), nil
}

func (c *Client) ListMissing(ctx context.Context) ([]entity.Article, error) {
	var ws []articleWire
	if err := c.do(ctx, "articulos.faltantes", http.MethodGet, "/articulos/articulos-faltantes", nil, &ws); err != nil {
		return nil, err
	}
	return decodeArticles(ws), nil
}

func (c *Client) SetDefaultSupplier(ctx context.Context, articleID, supplierID int64) error {
	body := struct {
		IDProveedor int64 `json:"idProveedor"`
	}{IDProveedor: supplierID}
	path := fmt.Sprintf("/articulos/proveedor-predeterminado/%d", articleID)
	return c.do(ctx, "articulos.proveedor_predeterminado", http.MethodPut, path, body, nil)
}
