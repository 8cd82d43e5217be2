package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/internal/domain/inventory"
)

// ReplenishmentUseCase sugiere cantidades de reposición por artículo.
// No crea órdenes; el compositor decide con estas sugerencias.
type ReplenishmentUseCase struct {
	articles ports.ArticleGateway
	links    ports.LinkGateway
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(articles ports.ArticleGateway, links ports.LinkGateway) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{articles: articles, links: links}
}

// Suggest calcula la sugerencia para un artículo con datos recién leídos del servidor.
func (uc *ReplenishmentUseCase) Suggest(ctx context.Context, articleID int64) (inventory.Suggestion, *entity.ArticleSupplier, error) {
	var (
		article *entity.Article
		all     []entity.ArticleSupplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := uc.articles.GetArticle(gctx, articleID)
		if err != nil {
			return fmt.Errorf("reposición: artículo %d: %w", articleID, err)
		}
		article = a
		return nil
	})
	g.Go(func() error {
		ls, err := uc.links.ListLinks(gctx)
		if err != nil {
			return fmt.Errorf("reposición: vínculos: %w", err)
		}
		all = ls
		return nil
	})
	if err := g.Wait(); err != nil {
		return inventory.Suggestion{}, nil, err
	}

	link := IndexLinks(all).Default(*article)
	return inventory.Suggest(*article, link), link, nil
}

// SuggestDTO igual que Suggest pero en forma de salida HTTP.
func (uc *ReplenishmentUseCase) SuggestDTO(ctx context.Context, articleID int64) (*dto.ReplenishmentSuggestionDTO, error) {
	s, link, err := uc.Suggest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	out := toSuggestionDTO(s, link)
	return &out, nil
}

// GenerateReplenishmentList sugerencias para los artículos que el servidor marca para reponer.
// Las sugerencias válidas van primero ordenadas por mayor déficit; después las rechazadas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Artículos candidatos
	candidates, err := uc.articles.ListToReplenish(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: listar a reponer: %w", err)
	}
	if len(candidates) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Vínculos de todos los artículos en una sola consulta
	all, err := uc.links.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: vínculos: %w", err)
	}
	idx := IndexLinks(all)

	// 3. Sugerencia por artículo
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(candidates))
	for _, a := range candidates {
		link := idx.Default(a)
		suggestions = append(suggestions, toSuggestionDTO(inventory.Suggest(a, link), link))
	}

	// 4. Ordenar: válidas primero, luego mayor déficit contra el umbral, luego nombre
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		okA, okB := a.Reason == "", b.Reason == ""
		if okA != okB {
			return okA
		}
		defA, defB := a.Threshold-a.CurrentStock, b.Threshold-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ArticleName < b.ArticleName
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}

// ListMissing artículos por debajo del stock de seguridad de su proveedor predeterminado
// (o del primer vínculo si no tiene predeterminado).
func (uc *ReplenishmentUseCase) ListMissing(ctx context.Context) ([]dto.MissingArticleDTO, error) {
	missing, err := uc.articles.ListMissing(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: listar faltantes: %w", err)
	}
	if len(missing) == 0 {
		return []dto.MissingArticleDTO{}, nil
	}
	all, err := uc.links.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: vínculos: %w", err)
	}
	idx := IndexLinks(all)

	out := make([]dto.MissingArticleDTO, 0, len(missing))
	for _, a := range missing {
		item := dto.MissingArticleDTO{
			ArticleID:         a.ID,
			ArticleName:       a.Name,
			CurrentStock:      a.Stock,
			MaxInventory:      a.MaxInventory,
			Headroom:          a.Headroom(),
			DefaultSupplierID: a.DefaultSupplierID,
		}
		if links := idx.For(a); len(links) > 0 {
			item.SafetyStock = links[0].SafetyStock
		}
		out = append(out, item)
	}
	return out, nil
}

func toSuggestionDTO(s inventory.Suggestion, link *entity.ArticleSupplier) dto.ReplenishmentSuggestionDTO {
	out := dto.ReplenishmentSuggestionDTO{
		ArticleID:          s.ArticleID,
		ArticleName:        s.ArticleName,
		SupplierID:         s.SupplierID,
		Model:              s.Model.String(),
		CurrentStock:       s.Stock,
		Threshold:          s.Threshold,
		MaxInventory:       s.Ceiling,
		SuggestedOrderQty:  s.Quantity,
		ResultingStock:     s.ResultingStock,
		UnitCost:           decimal.Zero,
		EstimatedOrderCost: decimal.Zero,
		Reason:             string(s.Reason),
	}
	if link != nil {
		out.UnitCost = link.UnitPrice
		out.EstimatedOrderCost = inventory.EstimatedOrderCost(s.Quantity, link.UnitPrice, link.OrderCost)
	}
	if err := s.Err(); err != nil {
		out.Message = err.Error()
	}
	return out
}
