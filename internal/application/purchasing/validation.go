package purchasing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// maxConcurrentReads lecturas simultáneas al servidor durante la validación.
const maxConcurrentReads = 4

// OrderValidator reglas que debe cumplir un conjunto de líneas antes de crear o
// modificar una orden. Siempre trabaja con datos recién leídos del servidor.
type OrderValidator struct {
	articles ports.ArticleGateway
	orders   ports.PurchaseOrderGateway
}

// NewOrderValidator construye el validador.
func NewOrderValidator(articles ports.ArticleGateway, orders ports.PurchaseOrderGateway) *OrderValidator {
	return &OrderValidator{articles: articles, orders: orders}
}

type lineSnapshot struct {
	article entity.Article
	active  []entity.PurchaseOrder
}

// Validate revisa todas las líneas y acumula cada falla en *domain.ValidationErrors:
// al menos un artículo, proveedor predeterminado asignado, sin orden activa con ese
// proveedor y stock resultante dentro del inventario máximo.
// excludeOrderID no cuenta como duplicada (la orden que se está modificando).
// Un error del servidor corta la validación y se devuelve tal cual.
func (v *OrderValidator) Validate(ctx context.Context, lines []entity.OrderLineInput, excludeOrderID int64) error {
	errs := &domain.ValidationErrors{}
	if len(lines) == 0 {
		errs.Add(fmt.Errorf("%w: la orden debe tener al menos un artículo", domain.ErrInvalidInput))
		return errs
	}

	seen := make(map[int64]bool, len(lines))
	for i, l := range lines {
		if l.Quantity <= 0 {
			errs.Add(&domain.FieldError{Field: fmt.Sprintf("lines[%d].quantity", i), Rule: "gt", Param: "0"})
		}
		if seen[l.ArticleID] {
			errs.Add(&domain.FieldError{Field: fmt.Sprintf("lines[%d].article_id", i), Rule: "unique"})
		}
		seen[l.ArticleID] = true
	}
	if !errs.Empty() {
		return errs
	}

	snaps, err := v.snapshot(ctx, lines)
	if err != nil {
		return err
	}

	for i, l := range lines {
		a := snaps[i].article
		if !a.HasDefaultSupplier() {
			errs.Add(&domain.ConfigurationWarning{ArticleID: a.ID, ArticleName: a.Name})
			continue
		}
		if o := activeWith(snaps[i].active, a.DefaultSupplierID, excludeOrderID); o != nil {
			errs.Add(&domain.DuplicateActiveOrderWarning{
				ArticleID:   a.ID,
				ArticleName: a.Name,
				SupplierID:  a.DefaultSupplierID,
				OrderID:     o.ID,
			})
		}
		if resulting := a.Stock + l.Quantity; resulting > a.MaxInventory {
			errs.Add(&domain.CeilingViolationError{
				ArticleID:      a.ID,
				ArticleName:    a.Name,
				ResultingStock: resulting,
				Ceiling:        a.MaxInventory,
			})
		}
	}
	return errs.ErrOrNil()
}

// snapshot lee cada artículo y sus órdenes activas, conservando el orden de las líneas.
func (v *OrderValidator) snapshot(ctx context.Context, lines []entity.OrderLineInput) ([]lineSnapshot, error) {
	snaps := make([]lineSnapshot, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, l := range lines {
		g.Go(func() error {
			a, err := v.articles.GetArticle(gctx, l.ArticleID)
			if err != nil {
				return fmt.Errorf("validación: artículo %d: %w", l.ArticleID, err)
			}
			active, err := v.orders.ListActiveByArticle(gctx, l.ArticleID)
			if err != nil {
				return fmt.Errorf("validación: órdenes activas del artículo %d: %w", l.ArticleID, err)
			}
			snaps[i] = lineSnapshot{article: *a, active: active}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// CheckDuplicate falla si el artículo ya tiene una orden activa con su proveedor predeterminado.
func (v *OrderValidator) CheckDuplicate(ctx context.Context, a entity.Article) error {
	active, err := v.orders.ListActiveByArticle(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("validación: órdenes activas del artículo %d: %w", a.ID, err)
	}
	if o := activeWith(active, a.DefaultSupplierID, 0); o != nil {
		return &domain.DuplicateActiveOrderWarning{
			ArticleID:   a.ID,
			ArticleName: a.Name,
			SupplierID:  a.DefaultSupplierID,
			OrderID:     o.ID,
		}
	}
	return nil
}

func activeWith(orders []entity.PurchaseOrder, supplierID, excludeOrderID int64) *entity.PurchaseOrder {
	for i := range orders {
		o := &orders[i]
		if o.ID != excludeOrderID && o.SupplierID == supplierID && o.Status.IsActive() {
			return o
		}
	}
	return nil
}
