package dto

import "github.com/jhoicas/inventario-compras/internal/domain/entity"

// ToArticleResponse mapea un artículo a su salida HTTP.
func ToArticleResponse(a entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:                a.ID,
		Name:              a.Name,
		Description:       a.Description,
		SalePrice:         a.SalePrice,
		StorageCost:       a.StorageCost,
		Stock:             a.Stock,
		Demand:            a.Demand,
		MaxInventory:      a.MaxInventory,
		DefaultSupplierID: a.DefaultSupplierID,
		Active:            a.Active,
		DeletedAt:         a.DeletedAt,
	}
}

func ToSupplierResponse(s entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Phone:     s.Phone,
		Email:     s.Email,
		Active:    s.Active,
		DeletedAt: s.DeletedAt,
	}
}

func ToLinkResponse(l entity.ArticleSupplier) LinkResponse {
	return LinkResponse{
		ID:                 l.ID,
		ArticleID:          l.ArticleID,
		SupplierID:         l.SupplierID,
		SupplierName:       l.SupplierName,
		IsDefault:          l.IsDefault,
		UnitPrice:          l.UnitPrice,
		OrderCost:          l.OrderCost,
		LeadTimeDays:       l.LeadTimeDays,
		DemandStdDev:       l.DemandStdDev,
		Model:              l.Model.String(),
		SafetyStock:        l.SafetyStock,
		ReorderPoint:       l.ReorderPoint,
		OptimalLot:         l.OptimalLot,
		ReviewIntervalDays: l.ReviewIntervalDays,
		MaxLevel:           l.MaxLevel,
	}
}

// ToPurchaseOrderResponse mapea una orden confirmada por el servidor.
func ToPurchaseOrderResponse(o entity.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, PurchaseOrderLineResponse{
			ArticleID:   l.ArticleID,
			ArticleName: l.ArticleName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return PurchaseOrderResponse{
		ID:            o.ID,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		Status:        o.Status.String(),
		Lines:         lines,
		TotalAmount:   o.TotalAmount,
		TotalQuantity: o.TotalQuantity,
		PendingAt:     o.PendingAt,
		ConfirmedAt:   o.ConfirmedAt,
		ReceivedAt:    o.ReceivedAt,
		CancelledAt:   o.CancelledAt,
	}
}

func ToSaleResponse(s entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			ArticleID:   l.ArticleID,
			ArticleName: l.ArticleName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return SaleResponse{ID: s.ID, Date: s.Date, Total: s.Total, Lines: lines}
}

// ToLineInputs convierte líneas de entrada HTTP a pares del dominio.
func ToLineInputs(in []OrderLineRequest) []entity.OrderLineInput {
	out := make([]entity.OrderLineInput, 0, len(in))
	for _, l := range in {
		out = append(out, entity.OrderLineInput{ArticleID: l.ArticleID, Quantity: l.Quantity})
	}
	return out
}
