package dto

import "github.com/shopspring/decimal"

// ReplenishRequest reposición administrativa de inventario.
type ReplenishRequest struct {
	TipoCombustible  string          `json:"tipo_combustible" validate:"required"`
	LitrosIngresados decimal.Decimal `json:"litros_ingresados"`
	Observaciones    string          `json:"observaciones"`
}

// InventoryEntryResponse fila del libro de inventario.
type InventoryEntryResponse struct {
	ID                int64           `json:"id"`
	TipoCombustible   string          `json:"tipo_combustible"`
	LitrosIngresados  decimal.Decimal `json:"litros_ingresados"`
	LitrosDisponibles decimal.Decimal `json:"litros_disponibles"`
	FechaIngreso      string          `json:"fecha_ingreso"`
	UsuarioID         *int64          `json:"usuario_id,omitempty"`
	UsuarioNombre     string          `json:"usuario_nombre,omitempty"`
	Observaciones     string          `json:"observaciones,omitempty"`
}

// InventoryStateResponse stock actual por combustible y bandera de
// disponibilidad global.
type InventoryStateResponse struct {
	Inventario map[string]decimal.Decimal `json:"inventario"`
	Disponible bool                       `json:"disponible"`
}
