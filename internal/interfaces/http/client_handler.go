package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appclient "github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// ClientHandler maneja el padrón de clientes y subclientes (protegido,
// operadores).
type ClientHandler struct {
	uc *appclient.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *appclient.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func saveInputFromDTO(in dto.SaveClientRequest) appclient.CreateInput {
	return appclient.CreateInput{
		Nombre:      in.Nombre,
		Cedula:      in.Cedula,
		Telefono:    in.Telefono,
		Direccion:   in.Direccion,
		RIF:         in.RIF,
		Placa:       in.Placa,
		Categoria:   in.Categoria,
		Huella:      in.Huella,
		MesGasolina: in.MesGasolina,
		MesGasoil:   in.MesGasoil,
	}
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        busqueda  query  string  false  "filtro por nombre, cédula o dirección (insensible a acentos)"
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clientes [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clientes, err := h.uc.Search(c.Query("busqueda"))
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.ClientResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clientToDTO(&clientes[i]))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveClientRequest  true  "datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y cedula son requeridos"})
	}
	cliente, err := h.uc.Create(c.UserContext(), saveInputFromDTO(in))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clientToDTO(cliente))
}

// Get godoc
// @Summary      Obtener cliente con los litros retirados del mes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	cliente, retirados, err := h.uc.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ClientDetailResponse{
		ClientResponse:     clientToDTO(cliente),
		LitrosRetiradosMes: retirados,
	})
}

// GetByTelefono godoc
// @Summary      Buscar cliente por teléfono exacto
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        telefono  path  string  true  "teléfono del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/telefono/{telefono} [get]
func (h *ClientHandler) GetByTelefono(c *fiber.Ctx) error {
	cliente, err := h.uc.ByTelefono(c.Params("telefono"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(clientToDTO(cliente))
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Reescribe datos y cupos mensuales; los saldos del día no cambian.
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del cliente"
// @Param        body  body  dto.SaveClientRequest  true  "datos del cliente"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.SaveClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y cedula son requeridos"})
	}
	cliente, err := h.uc.Update(c.UserContext(), id, saveInputFromDTO(in))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(clientToDTO(cliente))
}

// Deactivate godoc
// @Summary      Desactivar cliente (baja lógica)
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [delete]
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "cliente desactivado"})
}

// ListSubclients godoc
// @Summary      Listar subclientes de un cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente padre"
// @Success      200  {array}  dto.SubclientResponse
// @Router       /api/clientes/{id}/subclientes [get]
func (h *ClientHandler) ListSubclients(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	subclientes, err := h.uc.Subclients(id)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.SubclientResponse, 0, len(subclientes))
	for i := range subclientes {
		out = append(out, subclientToDTO(&subclientes[i]))
	}
	return c.JSON(out)
}

// CreateSubclient godoc
// @Summary      Crear subcliente
// @Description  El cupo del subcliente sale del cupo del padre; excederlo es conflicto.
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del cliente padre"
// @Param        body  body  dto.CreateSubclientRequest  true  "datos del subcliente"
// @Success      201   {object}  dto.SubclientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/subclientes [post]
func (h *ClientHandler) CreateSubclient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.CreateSubclientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	sc, err := h.uc.CreateSubclient(c.UserContext(), id, appclient.SubclientInput{
		Nombre:      in.Nombre,
		Cedula:      in.Cedula,
		Placa:       in.Placa,
		MesGasolina: in.MesGasolina,
		MesGasoil:   in.MesGasoil,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subclientToDTO(sc))
}

func subclientToDTO(sc *entity.Subclient) dto.SubclientResponse {
	return dto.SubclientResponse{
		ID:           sc.ID,
		ParentID:     sc.ParentID,
		Nombre:       sc.Nombre,
		Cedula:       sc.Cedula,
		Placa:        sc.Placa,
		Activo:       sc.Activo,
		MesGasolina:  sc.MonthlyGasoline,
		MesGasoil:    sc.MonthlyDiesel,
		DispGasolina: sc.AvailableGasoline,
		DispGasoil:   sc.AvailableDiesel,
	}
}
