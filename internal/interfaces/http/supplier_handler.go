package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/usecase"
)

// SupplierHandler proveedores y sus vínculos con artículos.
type SupplierHandler struct {
	uc    *usecase.SupplierUseCase
	links *usecase.LinkUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase, links *usecase.LinkUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc, links: links}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja proveedor
// @Tags         suppliers
// @Param        id   path  int  true  "ID del proveedor"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLinks godoc
// @Summary      Artículos que provee un proveedor
// @Tags         suppliers
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {array}  dto.LinkResponse
// @Router       /api/suppliers/{id}/links [get]
func (h *SupplierHandler) ListLinks(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.links.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLink godoc
// @Summary      Vincular artículo y proveedor
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinkRequest  true  "Vínculo"
// @Success      201   {object}  dto.LinkResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/links [post]
func (h *SupplierHandler) CreateLink(c *fiber.Ctx) error {
	var in dto.LinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.links.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLink godoc
// @Summary      Actualizar vínculo
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del vínculo"
// @Param        body  body  dto.LinkRequest  true  "Vínculo"
// @Success      200   {object}  dto.LinkResponse
// @Router       /api/links/{id} [put]
func (h *SupplierHandler) UpdateLink(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.LinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.links.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
