package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// PDFUseCase genera el documento PDF de una orden de compra para enviar al proveedor.
// Las órdenes canceladas no se imprimen.
type PDFUseCase struct {
	orders     ports.PurchaseOrderGateway
	suppliers  ports.SupplierGateway
	generator  OrderPDFGenerator
	issuerName string
	now        func() time.Time
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	orders ports.PurchaseOrderGateway,
	suppliers ports.SupplierGateway,
	generator OrderPDFGenerator,
	issuerName string,
) *PDFUseCase {
	return &PDFUseCase{
		orders:     orders,
		suppliers:  suppliers,
		generator:  generator,
		issuerName: issuerName,
		now:        time.Now,
	}
}

// DownloadOrderPDF recupera la orden y su proveedor y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
//   - domain.ErrInvalidInput     si la orden está cancelada.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID int64) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar orden ───────────────────────────────────────────────────────
	o, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if o.Status == entity.OrderCancelled {
		return nil, "", fmt.Errorf("%w: la orden %d está cancelada", domain.ErrInvalidInput, o.ID)
	}

	// ── 2. Cargar proveedor (si falla se usa lo que trae la orden) ───────────
	supplier := entity.Supplier{ID: o.SupplierID, Name: o.SupplierName}
	if s, sErr := uc.suppliers.GetSupplier(ctx, o.SupplierID); sErr == nil && s != nil {
		supplier = *s
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	o.ComputeTotals()
	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, OrderDocument{
		Order:      *o,
		Supplier:   supplier,
		IssuedAt:   uc.now(),
		IssuerName: uc.issuerName,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_compra_%d.pdf", o.ID)
	return pdfBytes, filename, nil
}
