package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemConfigID id fijo de la fila única de configuración.
const SystemConfigID = 1

// SystemConfig configuración global del sistema (fila única, id = 1).
// Mutada solo por el reset diario y por acciones administrativas explícitas.
type SystemConfig struct {
	ID                   int
	RetirosBloqueados    bool
	LimiteDiarioGasolina decimal.Decimal
	// FechaUltimoReset fecha (zona horaria de operación) del último reset
	// diario aplicado. Nil hasta la primera evaluación.
	FechaUltimoReset *time.Time
}
