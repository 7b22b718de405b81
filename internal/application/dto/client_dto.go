package dto

import "github.com/shopspring/decimal"

// SaveClientRequest datos para crear o actualizar un cliente.
// Los cupos se reciben por combustible; el total y los saldos iniciales se
// derivan en el caso de uso.
type SaveClientRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Cedula      string          `json:"cedula" validate:"required"`
	Telefono    string          `json:"telefono"`
	Direccion   string          `json:"direccion"`
	RIF         string          `json:"rif"`
	Placa       string          `json:"placa"`
	Categoria   string          `json:"categoria"`
	Huella      bool            `json:"huella"`
	MesGasolina decimal.Decimal `json:"litros_mes_gasolina"`
	MesGasoil   decimal.Decimal `json:"litros_mes_gasoil"`
}

// ClientDetailResponse cliente más los litros retirados en el mes corriente.
type ClientDetailResponse struct {
	ClientResponse
	LitrosRetiradosMes decimal.Decimal `json:"litros_retirados_mes"`
}

// CreateSubclientRequest datos para crear un subcliente de un padre.
type CreateSubclientRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Cedula      string          `json:"cedula"`
	Placa       string          `json:"placa"`
	MesGasolina decimal.Decimal `json:"litros_mes_gasolina"`
	MesGasoil   decimal.Decimal `json:"litros_mes_gasoil"`
}

// SubclientResponse representación pública de un subcliente.
type SubclientResponse struct {
	ID           int64           `json:"id"`
	ParentID     int64           `json:"cliente_padre_id"`
	Nombre       string          `json:"nombre"`
	Cedula       string          `json:"cedula,omitempty"`
	Placa        string          `json:"placa,omitempty"`
	Activo       bool            `json:"activo"`
	MesGasolina  decimal.Decimal `json:"litros_mes_gasolina"`
	MesGasoil    decimal.Decimal `json:"litros_mes_gasoil"`
	DispGasolina decimal.Decimal `json:"litros_disponibles_gasolina"`
	DispGasoil   decimal.Decimal `json:"litros_disponibles_gasoil"`
}
