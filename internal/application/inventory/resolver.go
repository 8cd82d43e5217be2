package inventory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// LinkResolver obtiene los proveedores de un artículo marcando el predeterminado.
type LinkResolver struct {
	articles  ports.ArticleGateway
	links     ports.LinkGateway
	suppliers ports.SupplierGateway
}

// NewLinkResolver construye el resolvedor de vínculos.
func NewLinkResolver(articles ports.ArticleGateway, links ports.LinkGateway, suppliers ports.SupplierGateway) *LinkResolver {
	return &LinkResolver{articles: articles, links: links, suppliers: suppliers}
}

// Resolved artículo junto con sus vínculos; el predeterminado, si existe, va primero.
type Resolved struct {
	Article entity.Article
	Links   []entity.ArticleSupplier
}

// Default vínculo con el proveedor predeterminado; nil si no hay.
func (r Resolved) Default() *entity.ArticleSupplier {
	if len(r.Links) > 0 && r.Links[0].IsDefault {
		return &r.Links[0]
	}
	return nil
}

// ResolveLinks consulta el artículo y sus vínculos en paralelo.
// Devuelve *domain.NotFoundError si el artículo no tiene proveedores asociados.
func (r *LinkResolver) ResolveLinks(ctx context.Context, articleID int64) (*Resolved, error) {
	var (
		article *entity.Article
		all     []entity.ArticleSupplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := r.articles.GetArticle(gctx, articleID)
		if err != nil {
			return fmt.Errorf("resolver: artículo %d: %w", articleID, err)
		}
		article = a
		return nil
	})
	g.Go(func() error {
		ls, err := r.links.ListLinks(gctx)
		if err != nil {
			return fmt.Errorf("resolver: vínculos: %w", err)
		}
		all = ls
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := IndexLinks(all)
	links := idx.For(*article)
	if len(links) == 0 {
		return nil, &domain.NotFoundError{Resource: "artículo", ID: articleID, Reason: "no tiene proveedores asociados"}
	}
	return &Resolved{Article: *article, Links: links}, nil
}

// SupplierOptions proveedores elegibles para el artículo, con su nombre completo.
func (r *LinkResolver) SupplierOptions(ctx context.Context, articleID int64) ([]dto.SupplierOptionResponse, error) {
	res, err := r.ResolveLinks(ctx, articleID)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	if needsNames(res.Links) {
		suppliers, err := r.suppliers.ListSuppliers(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolver: proveedores: %w", err)
		}
		for _, s := range suppliers {
			names[s.ID] = s.Name
		}
	}

	out := make([]dto.SupplierOptionResponse, 0, len(res.Links))
	for _, l := range res.Links {
		name := l.SupplierName
		if name == "" {
			name = names[l.SupplierID]
		}
		out = append(out, dto.SupplierOptionResponse{
			LinkID:       l.ID,
			SupplierID:   l.SupplierID,
			SupplierName: name,
			IsDefault:    l.IsDefault,
			Model:        l.Model.String(),
			UnitPrice:    l.UnitPrice,
			OrderCost:    l.OrderCost,
			LeadTimeDays: l.LeadTimeDays,
		})
	}
	return out, nil
}

func needsNames(links []entity.ArticleSupplier) bool {
	for _, l := range links {
		if l.SupplierName == "" {
			return true
		}
	}
	return false
}

// LinkIndex vínculos agrupados por artículo, en el orden en que los devolvió el servidor.
type LinkIndex map[int64][]entity.ArticleSupplier

// IndexLinks agrupa la lista completa de vínculos.
func IndexLinks(all []entity.ArticleSupplier) LinkIndex {
	idx := make(LinkIndex)
	for _, l := range all {
		idx[l.ArticleID] = append(idx[l.ArticleID], l)
	}
	return idx
}

// For vínculos del artículo con el predeterminado marcado y primero; el resto conserva su orden.
func (idx LinkIndex) For(a entity.Article) []entity.ArticleSupplier {
	src := idx[a.ID]
	out := make([]entity.ArticleSupplier, 0, len(src))
	var def *entity.ArticleSupplier
	for _, l := range src {
		l.IsDefault = a.HasDefaultSupplier() && l.SupplierID == a.DefaultSupplierID
		if l.IsDefault && def == nil {
			def = &l
			continue
		}
		l.IsDefault = false
		out = append(out, l)
	}
	if def != nil {
		out = append([]entity.ArticleSupplier{*def}, out...)
	}
	return out
}

// Default vínculo predeterminado del artículo; nil si no tiene.
func (idx LinkIndex) Default(a entity.Article) *entity.ArticleSupplier {
	if !a.HasDefaultSupplier() {
		return nil
	}
	for _, l := range idx[a.ID] {
		if l.SupplierID == a.DefaultSupplierID {
			l.IsDefault = true
			return &l
		}
	}
	return nil
}
