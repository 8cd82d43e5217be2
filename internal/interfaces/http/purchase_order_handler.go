package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
)

// PurchaseOrderHandler ciclo de vida de órdenes de compra.
type PurchaseOrderHandler struct {
	lc  *purchasing.LifecycleController
	pdf *purchasing.PDFUseCase
}

// NewPurchaseOrderHandler construye el handler. pdf puede ser nil y la descarga responde 404.
func NewPurchaseOrderHandler(lc *purchasing.LifecycleController, pdf *purchasing.PDFUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{lc: lc, pdf: pdf}
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.lc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Modify godoc
// @Summary      Modificar orden pendiente
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la orden"
// @Param        body  body  dto.ModifyOrderRequest  true  "Proveedor y líneas"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Modify(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ModifyOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.lc.Modify(c.UserContext(), id, in.SupplierID, dto.ToLineInputs(in.Lines))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden (PENDIENTE → ENVIADA)
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/confirm [post]
func (h *PurchaseOrderHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.lc.Confirm)
}

// Cancel godoc
// @Summary      Cancelar orden (PENDIENTE → CANCELADA)
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.lc.Cancel)
}

// Finalize godoc
// @Summary      Finalizar orden (ENVIADA → FINALIZADA)
// @Description  El servidor suma al stock las cantidades recibidas.
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/finalize [post]
func (h *PurchaseOrderHandler) Finalize(c *fiber.Ctx) error {
	return h.transition(c, h.lc.Finalize)
}

func (h *PurchaseOrderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := fn(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierOptions godoc
// @Summary      Proveedores elegibles para modificar la orden
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {array}  dto.SupplierOptionResponse
// @Router       /api/purchase-orders/{id}/suppliers [get]
func (h *PurchaseOrderHandler) SupplierOptions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lc.SupplierOptions(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la orden
// @Tags         purchase-orders
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) DownloadPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "generación de PDF no disponible"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.pdf.DownloadOrderPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
