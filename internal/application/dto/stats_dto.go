package dto

import "github.com/shopspring/decimal"

// GeneralStatsResponse totales generales del sistema.
type GeneralStatsResponse struct {
	TotalClientes        int64           `json:"total_clientes"`
	TotalLitrosRetirados decimal.Decimal `json:"total_litros_retirados"`
}

// SeriesPoint punto de una serie temporal de litros.
type SeriesPoint struct {
	Etiqueta string          `json:"etiqueta"` // fecha YYYY-MM-DD o mes YYYY-MM
	Litros   decimal.Decimal `json:"litros"`
}

// DispatchStatsResponse estadísticas de despacho: retiros directos más
// agendamientos entregados.
type DispatchStatsResponse struct {
	LitrosHoy          decimal.Decimal `json:"litros_hoy"`
	LitrosMes          decimal.Decimal `json:"litros_mes"`
	LitrosAnio         decimal.Decimal `json:"litros_anio"`
	ClientesActivosHoy int64           `json:"clientes_activos_hoy"`
	RetirosPorDia      []SeriesPoint   `json:"retirosPorDia"`
	RetirosPorMes      []SeriesPoint   `json:"retirosPorMes"`
}
