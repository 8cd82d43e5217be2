package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/inventory"
)

// InventoryHandler consultas de reposición.
type InventoryHandler struct {
	uc *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Suggestion godoc
// @Summary      Sugerencia de reposición de un artículo
// @Description  Cantidad sugerida según el modelo de inventario del proveedor predeterminado.
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ReplenishmentSuggestionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/replenishment [get]
func (h *InventoryHandler) Suggestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SuggestDTO(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToReplenish godoc
// @Summary      Artículos a reponer
// @Description  Artículos en o por debajo del punto de pedido, ordenados por prioridad.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/to-replenish [get]
func (h *InventoryHandler) ToReplenish(c *fiber.Ctx) error {
	out, err := h.uc.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Missing godoc
// @Summary      Artículos faltantes
// @Description  Artículos por debajo de su stock de seguridad.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.MissingArticleDTO
// @Router       /api/inventory/missing [get]
func (h *InventoryHandler) Missing(c *fiber.Ctx) error {
	out, err := h.uc.ListMissing(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
