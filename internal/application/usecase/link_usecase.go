package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// LinkUseCase alta y modificación de vínculos artículo-proveedor.
type LinkUseCase struct {
	links ports.LinkGateway
}

// NewLinkUseCase construye el caso de uso.
func NewLinkUseCase(links ports.LinkGateway) *LinkUseCase {
	return &LinkUseCase{links: links}
}

// List todos los vínculos; supplierID > 0 filtra por proveedor.
func (uc *LinkUseCase) List(ctx context.Context, supplierID int64) ([]dto.LinkResponse, error) {
	var (
		list []entity.ArticleSupplier
		err  error
	)
	if supplierID > 0 {
		list, err = uc.links.ListLinksBySupplier(ctx, supplierID)
	} else {
		list, err = uc.links.ListLinks(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("vinculos: listar: %w", err)
	}
	out := make([]dto.LinkResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ToLinkResponse(l))
	}
	return out, nil
}

func (uc *LinkUseCase) Create(ctx context.Context, in dto.LinkRequest) (*dto.LinkResponse, error) {
	l, err := toLink(in)
	if err != nil {
		return nil, err
	}
	created, err := uc.links.CreateLink(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("vinculos: crear: %w", err)
	}
	out := dto.ToLinkResponse(*created)
	return &out, nil
}

func (uc *LinkUseCase) Update(ctx context.Context, id int64, in dto.LinkRequest) (*dto.LinkResponse, error) {
	l, err := toLink(in)
	if err != nil {
		return nil, err
	}
	l.ID = id
	updated, err := uc.links.UpdateLink(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("vinculos: modificar %d: %w", id, err)
	}
	out := dto.ToLinkResponse(*updated)
	return &out, nil
}

// toLink valida la entrada y deja en cero los parámetros del modelo no elegido.
func toLink(in dto.LinkRequest) (entity.ArticleSupplier, error) {
	if err := dto.Validate(in); err != nil {
		return entity.ArticleSupplier{}, err
	}
	l := entity.ArticleSupplier{
		ArticleID:          in.ArticleID,
		SupplierID:         in.SupplierID,
		UnitPrice:          in.UnitPrice,
		OrderCost:          in.OrderCost,
		LeadTimeDays:       in.LeadTimeDays,
		DemandStdDev:       in.DemandStdDev,
		Model:              entity.InventoryModel(in.Model),
		SafetyStock:        in.SafetyStock,
		ReorderPoint:       in.ReorderPoint,
		OptimalLot:         in.OptimalLot,
		ReviewIntervalDays: in.ReviewIntervalDays,
		MaxLevel:           in.MaxLevel,
	}
	if l.Model == entity.ModelFixedInterval && l.ReviewIntervalDays <= 0 {
		return l, &domain.FieldError{Field: "review_interval_days", Rule: "gt", Param: "0"}
	}
	l.Normalize()
	return l, nil
}
