package dto

import "github.com/shopspring/decimal"

// LoginRequest credenciales de un usuario del sistema (admin/operador).
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión más datos básicos del usuario.
type LoginResponse struct {
	Token   string `json:"token"`
	ID      int64  `json:"id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
	EsAdmin bool   `json:"es_admin"`
}

// ClientLoginRequest login de cliente por cédula.
type ClientLoginRequest struct {
	Cedula string `json:"cedula" validate:"required"`
}

// ClientLoginResponse token más el snapshot de saldos del cliente.
// Se devuelve después de evaluar el reset diario, de modo que los saldos
// reflejen el estado del día.
type ClientLoginResponse struct {
	Token   string         `json:"token"`
	Cliente ClientResponse `json:"cliente"`
}

// ClientResponse representación pública de un cliente con sus saldos.
type ClientResponse struct {
	ID                int64           `json:"id"`
	Nombre            string          `json:"nombre"`
	Cedula            string          `json:"cedula"`
	Telefono          string          `json:"telefono,omitempty"`
	Direccion         string          `json:"direccion,omitempty"`
	Categoria         string          `json:"categoria,omitempty"`
	Placa             string          `json:"placa,omitempty"`
	Huella            bool            `json:"huella"`
	Activo            bool            `json:"activo"`
	LitrosMes         decimal.Decimal `json:"litros_mes"`
	LitrosDisponibles decimal.Decimal `json:"litros_disponibles"`
	MesGasolina       decimal.Decimal `json:"litros_mes_gasolina"`
	MesGasoil         decimal.Decimal `json:"litros_mes_gasoil"`
	DispGasolina      decimal.Decimal `json:"litros_disponibles_gasolina"`
	DispGasoil        decimal.Decimal `json:"litros_disponibles_gasoil"`
}
