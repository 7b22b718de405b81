package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/auth"
	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// AuthHandler maneja los dos logins del sistema.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login de usuario operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y password son requeridos"})
	}
	token, u, err := h.uc.AdminLogin(c.UserContext(), in.Usuario, in.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token:   token,
		ID:      u.ID,
		Usuario: u.Usuario,
		Nombre:  u.Nombre,
		EsAdmin: u.EsAdmin,
	})
}

// ClientLogin godoc
// @Summary      Login de cliente por cédula
// @Description  Evalúa el reset diario antes de devolver los saldos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientLoginRequest  true  "cedula"
// @Success      200   {object}  dto.ClientLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login-cliente [post]
func (h *AuthHandler) ClientLogin(c *fiber.Ctx) error {
	var in dto.ClientLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cedula es requerida"})
	}
	token, cliente, err := h.uc.ClientLogin(c.UserContext(), in.Cedula)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ClientLoginResponse{
		Token:   token,
		Cliente: clientToDTO(cliente),
	})
}

func clientToDTO(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                c.ID,
		Nombre:            c.Nombre,
		Cedula:            c.Cedula,
		Telefono:          c.Telefono,
		Direccion:         c.Direccion,
		Categoria:         c.Categoria,
		Placa:             c.Placa,
		Huella:            c.Huella,
		Activo:            c.Activo,
		LitrosMes:         c.MonthlyTotal,
		LitrosDisponibles: c.AvailableTotal,
		MesGasolina:       c.MonthlyGasoline,
		MesGasoil:         c.MonthlyDiesel,
		DispGasolina:      c.AvailableGasoline,
		DispGasoil:        c.AvailableDiesel,
	}
}
