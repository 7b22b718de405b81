package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un agendamiento. La transición pendiente -> entregado ocurre a lo
// sumo una vez y nunca se revierte.
const (
	ReservationPending   = "pendiente"
	ReservationDelivered = "entregado"
)

// Reservation agendamiento: despacho futuro con ticket que descuenta cupo e
// inventario en el momento de crearse. La entrega posterior es solo un cambio
// de estado contable, sin efecto sobre saldos ni inventario.
type Reservation struct {
	ID            int64
	ClienteID     int64
	SubclienteID  *int64
	FuelType      FuelType
	Litros        decimal.Decimal
	FechaAgendada time.Time
	CodigoTicket  int // secuencial por fecha agendada, inicia en 1
	Estado        string
	FechaCreacion time.Time

	// Poblados solo en listados con JOIN.
	ClienteNombre    string
	ClienteCedula    string
	SubclienteNombre string
}
