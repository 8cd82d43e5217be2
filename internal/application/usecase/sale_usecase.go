package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
)

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	sales    ports.SaleGateway
	articles ports.ArticleGateway
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(sales ports.SaleGateway, articles ports.ArticleGateway) *SaleUseCase {
	return &SaleUseCase{sales: sales, articles: articles}
}

// Create verifica el stock de cada artículo antes de registrar la venta.
// El servidor descuenta el stock; si otro cliente vendió antes puede rechazarla igual.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	requested := make(map[int64]int, len(in.Lines))
	for _, l := range in.Lines {
		requested[l.ArticleID] += l.Quantity
	}
	errs := &domain.ValidationErrors{}
	for _, l := range in.Lines {
		qty, pending := requested[l.ArticleID]
		if !pending {
			continue
		}
		delete(requested, l.ArticleID)
		a, err := uc.articles.GetArticle(ctx, l.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("ventas: artículo %d: %w", l.ArticleID, err)
		}
		if a.Stock < qty {
			errs.Add(&domain.InsufficientStockError{ArticleID: a.ID, ArticleName: a.Name, Stock: a.Stock, Requested: qty})
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	sale, err := uc.sales.CreateSale(ctx, dto.ToLineInputs(in.Lines))
	if err != nil {
		return nil, fmt.Errorf("ventas: crear: %w", err)
	}
	out := dto.ToSaleResponse(*sale)
	return &out, nil
}

func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetSale(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ventas: obtener %d: %w", id, err)
	}
	out := dto.ToSaleResponse(*s)
	return &out, nil
}

func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.sales.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("ventas: listar: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSaleResponse(s))
	}
	return out, nil
}
