package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/application/stats"
)

// StatsHandler estadísticas de solo lectura para el panel.
type StatsHandler struct {
	uc *stats.UseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.UseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// General godoc
// @Summary      Totales generales
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GeneralStatsResponse
// @Router       /api/estadisticas [get]
func (h *StatsHandler) General(c *fiber.Ctx) error {
	g, err := h.uc.GeneralStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.GeneralStatsResponse{
		TotalClientes:        g.TotalClientes,
		TotalLitrosRetirados: g.TotalLitrosRetirados,
	})
}

// Dispatch godoc
// @Summary      Estadísticas de despacho
// @Description  Retiros directos más agendamientos entregados: totales y series de los últimos 7 días y 12 meses.
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DispatchStatsResponse
// @Router       /api/estadisticas/despachos [get]
func (h *StatsHandler) Dispatch(c *fiber.Ctx) error {
	d, err := h.uc.DispatchStats()
	if err != nil {
		return fail(c, err)
	}
	out := dto.DispatchStatsResponse{
		LitrosHoy:          d.Totales.Hoy,
		LitrosMes:          d.Totales.Mes,
		LitrosAnio:         d.Totales.Anio,
		ClientesActivosHoy: d.ClientesActivosHoy,
		RetirosPorDia:      make([]dto.SeriesPoint, 0, len(d.PorDia)),
		RetirosPorMes:      make([]dto.SeriesPoint, 0, len(d.PorMes)),
	}
	for _, p := range d.PorDia {
		out.RetirosPorDia = append(out.RetirosPorDia, dto.SeriesPoint{
			Etiqueta: p.Fecha.Format("2006-01-02"),
			Litros:   p.Litros,
		})
	}
	for _, p := range d.PorMes {
		out.RetirosPorMes = append(out.RetirosPorMes, dto.SeriesPoint{
			Etiqueta: p.Mes,
			Litros:   p.Litros,
		})
	}
	return c.JSON(out)
}
