package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/pkg/jwt"
)

// Locals keys del actor autenticado en Fiber.
const (
	LocalActorID     = "actor_id"
	LocalActorTipo   = "actor_tipo"
	LocalActorNombre = "actor_nombre"
)

// AuthMiddleware valida el Bearer Token JWT y deja el actor en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, tipo, nombre, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalActorID, id)
		c.Locals(LocalActorTipo, tipo)
		c.Locals(LocalActorNombre, nombre)
		return c.Next()
	}
}

// AdminOnly restringe la ruta a usuarios operadores. Correr después de
// AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetActorTipo(c) != jwt.ActorAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere usuario operador"})
		}
		return c.Next()
	}
}

// GetActorID devuelve el ID del actor autenticado (0 si no hay).
func GetActorID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalActorID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetActorTipo devuelve el tipo del actor: jwt.ActorAdmin o
// jwt.ActorCliente.
func GetActorTipo(c *fiber.Ctx) string {
	v := c.Locals(LocalActorTipo)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
