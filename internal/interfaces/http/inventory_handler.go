package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// InventoryHandler maneja el libro de inventario (solo administradores).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// State godoc
// @Summary      Stock actual por combustible (público)
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  dto.InventoryStateResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) State(c *fiber.Ctx) error {
	estado, err := h.uc.CurrentState()
	if err != nil {
		return fail(c, err)
	}
	out := dto.InventoryStateResponse{
		Inventario: make(map[string]decimal.Decimal, len(estado)),
	}
	for fuel, litros := range estado {
		out.Inventario[fuel.String()] = litros
		if litros.IsPositive() {
			out.Disponible = true
		}
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial del libro de inventario
// @Description  Filas en orden cronológico inverso, con el usuario que las originó.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryEntryResponse
// @Router       /api/inventario/historial [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	entradas, err := h.uc.History()
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.InventoryEntryResponse, 0, len(entradas))
	for _, e := range entradas {
		out = append(out, dto.InventoryEntryResponse{
			ID:                e.ID,
			TipoCombustible:   e.FuelType.String(),
			LitrosIngresados:  e.LitersIn,
			LitrosDisponibles: e.LitersAfter,
			FechaIngreso:      e.Fecha.Format("2006-01-02 15:04:05"),
			UsuarioID:         e.UsuarioID,
			UsuarioNombre:     e.UsuarioNombre,
			Observaciones:     e.Observaciones,
		})
	}
	return c.JSON(out)
}

// Replenish godoc
// @Summary      Registrar reposición de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplenishRequest  true  "tipo_combustible, litros_ingresados"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario [post]
func (h *InventoryHandler) Replenish(c *fiber.Ctx) error {
	var in dto.ReplenishRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo_combustible es requerido"})
	}
	fuel, err := entity.ParseFuelType(in.TipoCombustible)
	if err != nil {
		return fail(c, err)
	}
	nuevo, err := h.uc.Replenish(c.UserContext(), fuel, in.LitrosIngresados, GetActorID(c), in.Observaciones)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje":            "inventario actualizado",
		"tipo_combustible":   fuel.String(),
		"litros_disponibles": nuevo,
	})
}

// Reset godoc
// @Summary      Llevar el inventario a cero
// @Description  Inserta un ajuste negativo por cada combustible con stock; el libro no se borra.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/inventario/reset [post]
func (h *InventoryHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.ResetToZero(c.UserContext(), GetActorID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "inventario reiniciado a cero"})
}
