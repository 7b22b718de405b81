package dto

import "github.com/shopspring/decimal"

// WithdrawRequest retiro inmediato: combustible ya despachado.
type WithdrawRequest struct {
	ClienteID       int64           `json:"cliente_id" validate:"required,gt=0"`
	TipoCombustible string          `json:"tipo_combustible"`
	Litros          decimal.Decimal `json:"litros"`
}

// WithdrawResponse resultado de un retiro.
type WithdrawResponse struct {
	ID         int64           `json:"id"`
	NuevoSaldo decimal.Decimal `json:"nuevo_saldo_cliente"`
	Mensaje    string          `json:"mensaje"`
}

// ReserveRequest agendamiento de despacho futuro.
// FechaAgendada formato YYYY-MM-DD; vacía = mañana.
type ReserveRequest struct {
	ClienteID       int64           `json:"cliente_id" validate:"required,gt=0"`
	SubclienteID    *int64          `json:"subcliente_id"`
	TipoCombustible string          `json:"tipo_combustible"`
	Litros          decimal.Decimal `json:"litros"`
	FechaAgendada   string          `json:"fecha_agendada"`
}

// ReserveResponse resultado de un agendamiento: ticket asignado y snapshots.
type ReserveResponse struct {
	ID              int64           `json:"id"`
	CodigoTicket    int             `json:"codigo_ticket"`
	FechaAgendada   string          `json:"fecha_agendada"`
	NuevoSaldo      decimal.Decimal `json:"nuevo_saldo_cliente"`
	NuevoInventario decimal.Decimal `json:"nuevo_inventario"`
}

// ReservationResponse agendamiento en listados.
type ReservationResponse struct {
	ID               int64           `json:"id"`
	ClienteID        int64           `json:"cliente_id"`
	ClienteNombre    string          `json:"cliente_nombre,omitempty"`
	ClienteCedula    string          `json:"cliente_cedula,omitempty"`
	SubclienteID     *int64          `json:"subcliente_id,omitempty"`
	SubclienteNombre string          `json:"subcliente_nombre,omitempty"`
	TipoCombustible  string          `json:"tipo_combustible"`
	Litros           decimal.Decimal `json:"litros"`
	FechaAgendada    string          `json:"fecha_agendada"`
	CodigoTicket     int             `json:"codigo_ticket"`
	Estado           string          `json:"estado"`
}

// WithdrawalResponse retiro en listados.
type WithdrawalResponse struct {
	ID              int64           `json:"id"`
	ClienteID       int64           `json:"cliente_id"`
	ClienteNombre   string          `json:"cliente_nombre,omitempty"`
	ClienteCedula   string          `json:"cliente_cedula,omitempty"`
	TipoCombustible string          `json:"tipo_combustible"`
	Litros          decimal.Decimal `json:"litros"`
	Fecha           string          `json:"fecha"`
	Hora            string          `json:"hora"`
}
