package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
)

// respondError mapea los errores de negocio a HTTP. Los errores estructurados
// exponen sus campos en Details para que la UI muestre valores concretos
// (disponible/solicitado, campo inválido) en lugar de un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: notFound.Error(),
			Details: map[string]any{"entity": notFound.Entity, "id": notFound.ID},
		})
	}

	var invalidInput *domain.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: invalidInput.Error(),
			Details: map[string]any{"field": invalidInput.Field, "reason": invalidInput.Reason},
		})
	}

	var invalidState *domain.InvalidStateError
	if errors.As(err, &invalidState) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_STATE",
			Message: invalidState.Error(),
			Details: map[string]any{
				"entity":        invalidState.Entity,
				"current_state": invalidState.CurrentState,
				"operation":     invalidState.Operation,
			},
		})
	}

	var insufficientStock *domain.InsufficientStockError
	if errors.As(err, &insufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficientStock.Error(),
			Details: map[string]any{
				"product":   insufficientStock.Product,
				"available": insufficientStock.Available,
				"requested": insufficientStock.Requested,
				"missing":   insufficientStock.Faltante(),
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func errInvalidDate(field string) error {
	return fmt.Errorf("%s inválido, use YYYY-MM-DD", field)
}
