package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal retiro: combustible ya despachado en el momento de la llamada.
// Inmutable una vez creado; no tiene estado pendiente.
type Withdrawal struct {
	ID        int64
	ClienteID int64
	FuelType  FuelType
	Litros    decimal.Decimal
	Fecha     time.Time
	Hora      time.Time
	UsuarioID int64

	// Poblados solo en listados con JOIN.
	ClienteNombre string
	ClienteCedula string
}
