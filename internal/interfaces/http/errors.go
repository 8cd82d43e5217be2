package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/domain"
)

// writeError traduce un error de dominio a status HTTP y cuerpo dto.ErrorResponse.
//
//	validación / sin proveedor / orden duplicada / techo / stock  → 422 con details
//	transición ilegal / operación en curso                        → 409
//	no encontrado                                                 → 404
//	entrada inválida                                              → 400
//	servidor de inventario                                        → 502
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]dto.ErrorDetail, 0, len(ve.Items))
		for _, it := range ve.Items {
			details = append(details, detailOf(it))
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(), Details: details,
		})
	}
	if d, ok := warningDetail(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: d.Code, Message: err.Error(), Details: []dto.ErrorDetail{d},
		})
	}
	if errors.Is(err, domain.ErrNoReplenishmentNeeded) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_REPLENISHMENT_NEEDED", Message: err.Error()})
	}

	var it *domain.IllegalTransitionError
	if errors.As(err, &it) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "ILLEGAL_TRANSITION", Message: err.Error(),
			Details: []dto.ErrorDetail{{Code: it.Current, Message: "estado actual", OrderID: it.OrderID}},
		})
	}
	if errors.Is(err, domain.ErrOperationInFlight) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OPERATION_IN_FLIGHT", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrUpstream) {
		resp := dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: err.Error()}
		var ge *domain.GatewayError
		if errors.As(err, &ge) {
			resp.Details = []dto.ErrorDetail{{Code: strconv.Itoa(ge.Status), Message: ge.Message}}
		}
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// warningDetail detalle para las fallas que se informan por artículo o campo.
func warningDetail(err error) (dto.ErrorDetail, bool) {
	var (
		cw *domain.ConfigurationWarning
		dw *domain.DuplicateActiveOrderWarning
		cv *domain.CeilingViolationError
		is *domain.InsufficientStockError
		fe *domain.FieldError
	)
	switch {
	case errors.As(err, &cw):
		return dto.ErrorDetail{Code: "NO_DEFAULT_SUPPLIER", Message: cw.Error(), ArticleID: cw.ArticleID}, true
	case errors.As(err, &dw):
		return dto.ErrorDetail{Code: "DUPLICATE_ACTIVE_ORDER", Message: dw.Error(), ArticleID: dw.ArticleID, OrderID: dw.OrderID}, true
	case errors.As(err, &cv):
		return dto.ErrorDetail{Code: "CEILING_EXCEEDED", Message: cv.Error(), ArticleID: cv.ArticleID}, true
	case errors.As(err, &is):
		return dto.ErrorDetail{Code: "INSUFFICIENT_STOCK", Message: is.Error(), ArticleID: is.ArticleID}, true
	case errors.As(err, &fe):
		return dto.ErrorDetail{Code: "INVALID_FIELD", Message: fe.Error(), Field: fe.Field}, true
	}
	return dto.ErrorDetail{}, false
}

func detailOf(err error) dto.ErrorDetail {
	if d, ok := warningDetail(err); ok {
		return d
	}
	return dto.ErrorDetail{Code: "VALIDATION", Message: err.Error()}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee un id numérico positivo del path.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return id, nil
}
