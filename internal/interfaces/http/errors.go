package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/domain"
)

// fail mapea los errores de dominio al código HTTP y cuerpo estándar. Todo
// handler termina aquí sus caminos de error.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SALDO_INSUFICIENTE", Message: "saldo insuficiente"})
	case errors.Is(err, domain.ErrInsufficientInventory):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVENTARIO_INSUFICIENTE", Message: "inventario insuficiente"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	case errors.Is(err, domain.ErrServiceBlocked):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SERVICIO_BLOQUEADO", Message: "los agendamientos están bloqueados temporalmente"})
	case errors.Is(err, domain.ErrTransient):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TRANSIENT", Message: "error transitorio, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
