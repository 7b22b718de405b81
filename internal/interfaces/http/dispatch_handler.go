package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// DispatchHandler maneja retiros y agendamientos (protegido, operadores).
type DispatchHandler struct {
	uc     *dispatch.UseCase
	pdfGen dispatch.TicketPDFGenerator
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *dispatch.UseCase, pdfGen dispatch.TicketPDFGenerator) *DispatchHandler {
	return &DispatchHandler{uc: uc, pdfGen: pdfGen}
}

// Withdraw godoc
// @Summary      Registrar retiro inmediato
// @Tags         retiros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawRequest  true  "cliente_id, tipo_combustible, litros"
// @Success      201   {object}  dto.WithdrawResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/retiros [post]
func (h *DispatchHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id es requerido"})
	}
	fuel, err := entity.ParseFuelType(in.TipoCombustible)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Withdraw(c.UserContext(), dispatch.WithdrawInput{
		ClienteID: in.ClienteID,
		Fuel:      fuel,
		Litros:    in.Litros,
		UsuarioID: GetActorID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WithdrawResponse{
		ID:         out.ID,
		NuevoSaldo: out.NuevoSaldo,
		Mensaje:    "Retiro registrado exitosamente",
	})
}

// ListWithdrawals godoc
// @Summary      Historial de retiros
// @Tags         retiros
// @Security     Bearer
// @Produce      json
// @Param        cliente_id  query  int     false  "filtrar por cliente"
// @Param        desde       query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        hasta       query  string  false  "fecha final YYYY-MM-DD"
// @Success      200  {array}  dto.WithdrawalResponse
// @Router       /api/retiros [get]
func (h *DispatchHandler) ListWithdrawals(c *fiber.Ctx) error {
	var filter repository.WithdrawalFilter
	if v := c.QueryInt("cliente_id"); v > 0 {
		id := int64(v)
		filter.ClienteID = &id
	}
	if v := c.Query("desde"); v != "" {
		desde, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: formato YYYY-MM-DD"})
		}
		filter.Desde = &desde
	}
	if v := c.Query("hasta"); v != "" {
		hasta, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: formato YYYY-MM-DD"})
		}
		filter.Hasta = &hasta
	}
	retiros, err := h.uc.ListWithdrawals(filter)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.WithdrawalResponse, 0, len(retiros))
	for _, w := range retiros {
		out = append(out, dto.WithdrawalResponse{
			ID:              w.ID,
			ClienteID:       w.ClienteID,
			ClienteNombre:   w.ClienteNombre,
			ClienteCedula:   w.ClienteCedula,
			TipoCombustible: w.FuelType.String(),
			Litros:          w.Litros,
			Fecha:           w.Fecha.Format("2006-01-02"),
			Hora:            w.Hora.Format("15:04:05"),
		})
	}
	return c.JSON(out)
}

// Reserve godoc
// @Summary      Crear agendamiento
// @Description  Asigna ticket secuencial del día y descuenta saldo e inventario.
// @Tags         agendamientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "cliente_id, litros, fecha_agendada"
// @Success      201   {object}  dto.ReserveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/agendamientos [post]
func (h *DispatchHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id es requerido"})
	}
	fuel, err := entity.ParseFuelType(in.TipoCombustible)
	if err != nil {
		return fail(c, err)
	}
	var fecha time.Time
	if in.FechaAgendada != "" {
		fecha, err = time.Parse("2006-01-02", in.FechaAgendada)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_agendada: formato YYYY-MM-DD"})
		}
	}
	usuarioID := GetActorID(c)
	out, err := h.uc.Reserve(c.UserContext(), dispatch.ReserveInput{
		ClienteID:     in.ClienteID,
		SubclienteID:  in.SubclienteID,
		Fuel:          fuel,
		Litros:        in.Litros,
		FechaAgendada: fecha,
		UsuarioID:     &usuarioID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReserveResponse{
		ID:              out.ID,
		CodigoTicket:    out.CodigoTicket,
		FechaAgendada:   out.FechaAgendada.Format("2006-01-02"),
		NuevoSaldo:      out.NuevoSaldo,
		NuevoInventario: out.NuevoInventario,
	})
}

// ListByDate godoc
// @Summary      Agendamientos de una fecha
// @Tags         agendamientos
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "YYYY-MM-DD; hoy por defecto"
// @Success      200  {array}  dto.ReservationResponse
// @Router       /api/agendamientos [get]
func (h *DispatchHandler) ListByDate(c *fiber.Ctx) error {
	var fecha time.Time
	if v := c.Query("fecha"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha: formato YYYY-MM-DD"})
		}
		fecha = parsed
	}
	agendamientos, err := h.uc.ReservationsByDate(fecha)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reservationsToDTO(agendamientos))
}

// ListByClient godoc
// @Summary      Historial de agendamientos de un cliente
// @Tags         agendamientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.ReservationResponse
// @Router       /api/agendamientos/cliente/{id} [get]
func (h *DispatchHandler) ListByClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	agendamientos, err := h.uc.ReservationsByClient(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reservationsToDTO(agendamientos))
}

// Deliver godoc
// @Summary      Marcar agendamiento como entregado
// @Description  Solo cambia estado; el descuento ocurrió al agendar.
// @Tags         agendamientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del agendamiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agendamientos/{id}/entregar [put]
func (h *DispatchHandler) Deliver(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.MarkDelivered(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "agendamiento entregado"})
}

// TicketPDF godoc
// @Summary      Comprobante PDF del agendamiento
// @Tags         agendamientos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del agendamiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agendamientos/{id}/ticket [get]
func (h *DispatchHandler) TicketPDF(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	pdf, err := h.uc.TicketPDF(c.UserContext(), id, h.pdfGen)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="ticket.pdf"`)
	return c.Send(pdf)
}

func reservationsToDTO(list []entity.Reservation) []dto.ReservationResponse {
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ReservationResponse{
			ID:               r.ID,
			ClienteID:        r.ClienteID,
			ClienteNombre:    r.ClienteNombre,
			ClienteCedula:    r.ClienteCedula,
			SubclienteID:     r.SubclienteID,
			SubclienteNombre: r.SubclienteNombre,
			TipoCombustible:  r.FuelType.String(),
			Litros:           r.Litros,
			FechaAgendada:    r.FechaAgendada.Format("2006-01-02"),
			CodigoTicket:     r.CodigoTicket,
			Estado:           r.Estado,
		})
	}
	return out
}
