package dto

import "github.com/shopspring/decimal"

// BlockRequest bloqueo o desbloqueo administrativo de agendamientos.
type BlockRequest struct {
	Bloqueado bool `json:"bloqueado"`
}

// DayLimit litros agendados y procesados de un día frente al límite diario.
type DayLimit struct {
	Fecha      string          `json:"fecha"`
	Agendados  decimal.Decimal `json:"agendados"`
	Procesados decimal.Decimal `json:"procesados,omitempty"`
	Disponible decimal.Decimal `json:"disponible,omitempty"`
}

// LimitsResponse reporte informativo del límite diario de gasolina.
// Solo reporte: el límite nunca bloquea agendamientos.
type LimitsResponse struct {
	LimiteDiario decimal.Decimal `json:"limite_diario"`
	Hoy          DayLimit        `json:"hoy"`
	Manana       DayLimit        `json:"mañana"`
}
