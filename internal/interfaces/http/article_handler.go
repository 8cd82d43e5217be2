package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/inventory"
	"github.com/jhoicas/inventario-compras/internal/application/usecase"
)

// ArticleHandler maneja las peticiones HTTP para artículos.
type ArticleHandler struct {
	uc       *usecase.ArticleUseCase
	resolver *inventory.LinkResolver
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, resolver *inventory.LinkResolver) *ArticleHandler {
	return &ArticleHandler{uc: uc, resolver: resolver}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
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
// @Summary      Obtener artículo por ID
// @Tags         articles
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar artículos
// @Tags         articles
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ArticleListResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateArticleRequest
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
// @Summary      Dar de baja artículo
// @Tags         articles
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDefaultSupplier godoc
// @Summary      Asignar proveedor predeterminado
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  int                            true  "ID del artículo"
// @Param        body  body  dto.SetDefaultSupplierRequest  true  "Proveedor"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/default-supplier [put]
func (h *ArticleHandler) SetDefaultSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SetDefaultSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetDefaultSupplier(c.UserContext(), id, in.SupplierID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierOptions godoc
// @Summary      Proveedores del artículo
// @Description  Vínculos artículo-proveedor; el predeterminado va primero.
// @Tags         articles
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {array}   dto.SupplierOptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/suppliers [get]
func (h *ArticleHandler) SupplierOptions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.resolver.SupplierOptions(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
