package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/application/system"
)

// SystemHandler operaciones administrativas globales: bloqueo de servicio,
// límite diario y reset forzado de cupos.
type SystemHandler struct {
	uc    *system.UseCase
	reset *quota.ResetUseCase
}

// NewSystemHandler construye el handler.
func NewSystemHandler(uc *system.UseCase, reset *quota.ResetUseCase) *SystemHandler {
	return &SystemHandler{uc: uc, reset: reset}
}

// State godoc
// @Summary      Estado global del servicio (público)
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sistema/estado [get]
func (h *SystemHandler) State(c *fiber.Ctx) error {
	cfg, err := h.uc.Config()
	if err != nil {
		return fail(c, err)
	}
	out := fiber.Map{
		"retiros_bloqueados":     cfg.RetirosBloqueados,
		"limite_diario_gasolina": cfg.LimiteDiarioGasolina,
	}
	if cfg.FechaUltimoReset != nil {
		out["fecha_ultimo_reset"] = cfg.FechaUltimoReset.Format("2006-01-02")
	}
	return c.JSON(out)
}

// SetBlocked godoc
// @Summary      Bloquear o desbloquear agendamientos
// @Description  Con el servicio bloqueado todo agendamiento nuevo falla; los retiros directos no se ven afectados.
// @Tags         sistema
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BlockRequest  true  "bloqueado"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/sistema/bloqueo [post]
func (h *SystemHandler) SetBlocked(c *fiber.Ctx) error {
	var in dto.BlockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetBlocked(c.UserContext(), in.Bloqueado); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"retiros_bloqueados": in.Bloqueado})
}

// Limits godoc
// @Summary      Reporte del límite diario de gasolina
// @Description  Informativo: el límite nunca rechaza agendamientos.
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LimitsResponse
// @Router       /api/sistema/limites [get]
func (h *SystemHandler) Limits(c *fiber.Ctx) error {
	rep, err := h.uc.DailyLimits()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.LimitsResponse{
		LimiteDiario: rep.LimiteDiario,
		Hoy:          dayLimitToDTO(rep.Hoy),
		Manana:       dayLimitToDTO(rep.Manana),
	})
}

// ForceReset godoc
// @Summary      Reponer todos los cupos ahora
// @Description  Repone saldos de clientes y subclientes sin mover la fecha del último reset.
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sistema/reset-litros [post]
func (h *SystemHandler) ForceReset(c *fiber.Ctx) error {
	n, err := h.reset.ForceReset(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"mensaje":               "cupos repuestos",
		"clientes_actualizados": n,
	})
}

func dayLimitToDTO(d system.DayLimit) dto.DayLimit {
	return dto.DayLimit{
		Fecha:      d.Fecha.Format("2006-01-02"),
		Agendados:  d.Agendados,
		Procesados: d.Procesados,
		Disponible: d.Disponible,
	}
}
