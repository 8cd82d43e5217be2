package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// ArticleUseCase casos de uso CRUD para artículos. El stock cambia por ventas y órdenes finalizadas.
type ArticleUseCase struct {
	articles ports.ArticleGateway
	links    ports.LinkGateway
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(articles ports.ArticleGateway, links ports.LinkGateway) *ArticleUseCase {
	return &ArticleUseCase{articles: articles, links: links}
}

// Create crea un nuevo artículo.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Stock > in.MaxInventory {
		return nil, &domain.CeilingViolationError{ArticleName: in.Name, ResultingStock: in.Stock, Ceiling: in.MaxInventory}
	}
	created, err := uc.articles.CreateArticle(ctx, entity.Article{
		Name:              in.Name,
		Description:       in.Description,
		SalePrice:         in.SalePrice,
		StorageCost:       in.StorageCost,
		Stock:             in.Stock,
		Demand:            in.Demand,
		MaxInventory:      in.MaxInventory,
		DefaultSupplierID: in.DefaultSupplierID,
		Active:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("articulos: crear: %w", err)
	}
	out := dto.ToArticleResponse(*created)
	return &out, nil
}

// GetByID obtiene un artículo por ID.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id int64) (*dto.ArticleResponse, error) {
	a, err := uc.articles.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("articulos: obtener %d: %w", id, err)
	}
	out := dto.ToArticleResponse(*a)
	return &out, nil
}

// List lista artículos activos con paginación.
func (uc *ArticleUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ArticleListResponse, error) {
	page.DefaultPage()
	all, err := uc.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("articulos: listar: %w", err)
	}
	from, to := page.Bounds(len(all))
	items := make([]dto.ArticleResponse, 0, to-from)
	for _, a := range all[from:to] {
		items = append(items, dto.ToArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(all)},
	}, nil
}

// Update actualiza un artículo. El proveedor predeterminado se cambia con SetDefaultSupplier.
func (uc *ArticleUseCase) Update(ctx context.Context, id int64, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := uc.articles.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("articulos: obtener %d: %w", id, err)
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.SalePrice != nil {
		a.SalePrice = *in.SalePrice
	}
	if in.StorageCost != nil {
		a.StorageCost = *in.StorageCost
	}
	if in.Stock != nil {
		a.Stock = *in.Stock
	}
	if in.Demand != nil {
		a.Demand = *in.Demand
	}
	if in.MaxInventory != nil {
		a.MaxInventory = *in.MaxInventory
	}
	if a.SalePrice.IsNegative() || a.StorageCost.IsNegative() {
		return nil, fmt.Errorf("%w: precio y costo de almacenamiento no pueden ser negativos", domain.ErrInvalidInput)
	}
	if a.Stock > a.MaxInventory {
		return nil, &domain.CeilingViolationError{ArticleID: a.ID, ArticleName: a.Name, ResultingStock: a.Stock, Ceiling: a.MaxInventory}
	}
	updated, err := uc.articles.UpdateArticle(ctx, *a)
	if err != nil {
		return nil, fmt.Errorf("articulos: modificar %d: %w", id, err)
	}
	out := dto.ToArticleResponse(*updated)
	return &out, nil
}

// Delete baja lógica del artículo.
func (uc *ArticleUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.articles.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("articulos: baja %d: %w", id, err)
	}
	return nil
}

// SetDefaultSupplier asigna el proveedor predeterminado. El proveedor debe estar vinculado al artículo.
func (uc *ArticleUseCase) SetDefaultSupplier(ctx context.Context, articleID, supplierID int64) (*dto.ArticleResponse, error) {
	if supplierID <= 0 {
		return nil, &domain.FieldError{Field: "supplier_id", Rule: "gt", Param: "0"}
	}
	links, err := uc.links.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("articulos: vínculos: %w", err)
	}
	linked := false
	for _, l := range links {
		if l.ArticleID == articleID && l.SupplierID == supplierID {
			linked = true
			break
		}
	}
	if !linked {
		return nil, fmt.Errorf("%w: el proveedor %d no está vinculado al artículo %d", domain.ErrInvalidInput, supplierID, articleID)
	}
	if err := uc.articles.SetDefaultSupplier(ctx, articleID, supplierID); err != nil {
		return nil, fmt.Errorf("articulos: proveedor predeterminado %d: %w", articleID, err)
	}
	return uc.GetByID(ctx, articleID)
}
