package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
)

// DraftHandler composición de órdenes de compra.
type DraftHandler struct {
	composer *purchasing.Composer
}

// NewDraftHandler construye el handler.
func NewDraftHandler(composer *purchasing.Composer) *DraftHandler {
	return &DraftHandler{composer: composer}
}

// Create godoc
// @Summary      Nuevo borrador de orden de compra
// @Tags         drafts
// @Produce      json
// @Success      201  {object}  dto.DraftResponse
// @Router       /api/purchase-order-drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	out, err := h.composer.NewDraft(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-order-drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.composer.GetDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-order-drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.composer.Discard(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddArticle godoc
// @Summary      Agregar artículo al borrador
// @Description  quantity 0 usa la cantidad sugerida. Si el artículo ya está, reemplaza la cantidad.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id         path  string                   true  "ID del borrador"
// @Param        articleId  path  int                      true  "ID del artículo"
// @Param        body       body  dto.SetDraftLineRequest  true  "Cantidad"
// @Success      200  {object}  dto.DraftResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-order-drafts/{id}/lines/{articleId} [put]
func (h *DraftHandler) AddArticle(c *fiber.Ctx) error {
	articleID, err := paramID(c, "articleId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SetDraftLineRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.composer.AddArticle(c.UserContext(), c.Params("id"), articleID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id         path  string                   true  "ID del borrador"
// @Param        articleId  path  int                      true  "ID del artículo"
// @Param        body       body  dto.SetDraftLineRequest  true  "Cantidad"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-order-drafts/{id}/lines/{articleId} [patch]
func (h *DraftHandler) SetQuantity(c *fiber.Ctx) error {
	articleID, err := paramID(c, "articleId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SetDraftLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.composer.SetQuantity(c.UserContext(), c.Params("id"), articleID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveArticle godoc
// @Summary      Quitar artículo del borrador
// @Tags         drafts
// @Produce      json
// @Param        id         path  string  true  "ID del borrador"
// @Param        articleId  path  int     true  "ID del artículo"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/purchase-order-drafts/{id}/lines/{articleId} [delete]
func (h *DraftHandler) RemoveArticle(c *fiber.Ctx) error {
	articleID, err := paramID(c, "articleId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.composer.RemoveArticle(c.UserContext(), c.Params("id"), articleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar borrador
// @Description  Valida todas las líneas y crea la orden en estado PENDIENTE.
// @Tags         drafts
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/purchase-order-drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.composer.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
