package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntry registro inmutable del libro de inventario por combustible.
// El libro es append-only: cada cambio de stock (reposición, agendamiento,
// reset administrativo) inserta una fila nueva con el total corrido; el stock
// actual de un combustible es LitersAfter de su fila más reciente. Las filas
// nunca se actualizan ni se borran.
type InventoryEntry struct {
	ID          int64
	FuelType    FuelType
	LitersIn    decimal.Decimal // firmado: positivo = reposición, negativo = consumo
	LitersAfter decimal.Decimal // total corrido después de aplicar LitersIn
	Fecha       time.Time
	UsuarioID   *int64
	// Nombre del usuario, solo poblado en listados con JOIN.
	UsuarioNombre string
	Observaciones string
}
