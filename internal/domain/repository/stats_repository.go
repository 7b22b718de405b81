package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPoint punto de una serie diaria de litros despachados.
type DailyPoint struct {
	Fecha  time.Time
	Litros decimal.Decimal
}

// MonthlyPoint punto de una serie mensual de litros despachados.
type MonthlyPoint struct {
	Mes    string // YYYY-MM
	Litros decimal.Decimal
}

// DispatchTotals totales de litros despachados (retiros directos +
// agendamientos entregados) para hoy, el mes y el año corrientes.
type DispatchTotals struct {
	Hoy  decimal.Decimal
	Mes  decimal.Decimal
	Anio decimal.Decimal
}

// StatsRepository consultas de solo lectura para estadísticas y reportes.
// Agrega retiros directos y agendamientos entregados; nunca escribe.
type StatsRepository interface {
	// TotalClientesActivos número de clientes activos.
	TotalClientesActivos() (int64, error)
	// TotalLitrosRetirados suma histórica de litros retirados.
	TotalLitrosRetirados() (decimal.Decimal, error)
	// DispatchTotals totales de hoy/mes/año en la fecha de referencia.
	DispatchTotals(ref time.Time) (*DispatchTotals, error)
	// ClientesActivosHoy clientes distintos que despacharon en la fecha.
	ClientesActivosHoy(ref time.Time) (int64, error)
	// SerieDiaria últimos 7 días desde ref, litros por día.
	SerieDiaria(ref time.Time) ([]DailyPoint, error)
	// SerieMensual últimos 12 meses desde ref, litros por mes.
	SerieMensual(ref time.Time) ([]MonthlyPoint, error)
}
