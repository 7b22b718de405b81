package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura sobre PostgreSQL. Los
// despachos son la unión de retiros directos y agendamientos entregados.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas. Pasar pool o tx
// (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// despachos subconsulta común: (fecha, litros) de todo lo despachado.
const despachos = `
	SELECT fecha, litros FROM retiros
	UNION ALL
	SELECT fecha_agendada AS fecha, litros FROM agendamientos WHERE estado = 'entregado'`

// TotalClientesActivos número de clientes activos.
func (r *StatsRepo) TotalClientesActivos() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM clientes WHERE activo`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count clientes activos: %w", err)
	}
	return n, nil
}

// TotalLitrosRetirados suma histórica de litros retirados.
func (r *StatsRepo) TotalLitrosRetirados() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(litros), 0) FROM retiros`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum litros retirados: %w", err)
	}
	return total, nil
}

// DispatchTotals litros despachados hoy, en el mes y en el año de ref.
func (r *StatsRepo) DispatchTotals(ref time.Time) (*repository.DispatchTotals, error) {
	query := `
		SELECT COALESCE(SUM(litros) FILTER (WHERE fecha = $1::date), 0),
		       COALESCE(SUM(litros) FILTER (WHERE date_trunc('month', fecha) = date_trunc('month', $1::date)), 0),
		       COALESCE(SUM(litros) FILTER (WHERE date_trunc('year', fecha) = date_trunc('year', $1::date)), 0)
		FROM (` + despachos + `) d`
	var t repository.DispatchTotals
	err := r.q.QueryRow(context.Background(), query, ref).Scan(&t.Hoy, &t.Mes, &t.Anio)
	if err != nil {
		return nil, fmt.Errorf("dispatch totals: %w", err)
	}
	return &t, nil
}

// ClientesActivosHoy clientes distintos que despacharon en la fecha.
func (r *StatsRepo) ClientesActivosHoy(ref time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT cliente_id) FROM (
			SELECT cliente_id FROM retiros WHERE fecha = $1::date
			UNION
			SELECT cliente_id FROM agendamientos WHERE estado = 'entregado' AND fecha_agendada = $1::date
		) d`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, ref).Scan(&n); err != nil {
		return 0, fmt.Errorf("clientes activos hoy: %w", err)
	}
	return n, nil
}

// SerieDiaria litros despachados por día en los últimos 7 días hasta ref,
// incluyendo los días sin despacho.
func (r *StatsRepo) SerieDiaria(ref time.Time) ([]repository.DailyPoint, error) {
	query := `
		SELECT dia::date, COALESCE(SUM(d.litros), 0)
		FROM generate_series($1::date - 6, $1::date, '1 day') AS dia
		LEFT JOIN (` + despachos + `) d ON d.fecha = dia::date
		GROUP BY dia ORDER BY dia`
	rows, err := r.q.Query(context.Background(), query, ref)
	if err != nil {
		return nil, fmt.Errorf("serie diaria: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyPoint
	for rows.Next() {
		var p repository.DailyPoint
		if err := rows.Scan(&p.Fecha, &p.Litros); err != nil {
			return nil, fmt.Errorf("scan serie diaria: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SerieMensual litros despachados por mes en los últimos 12 meses hasta ref.
func (r *StatsRepo) SerieMensual(ref time.Time) ([]repository.MonthlyPoint, error) {
	query := `
		SELECT to_char(mes, 'YYYY-MM'), COALESCE(SUM(d.litros), 0)
		FROM generate_series(
			date_trunc('month', $1::date) - interval '11 months',
			date_trunc('month', $1::date),
			'1 month') AS mes
		LEFT JOIN (` + despachos + `) d ON date_trunc('month', d.fecha) = mes
		GROUP BY mes ORDER BY mes`
	rows, err := r.q.Query(context.Background(), query, ref)
	if err != nil {
		return nil, fmt.Errorf("serie mensual: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyPoint
	for rows.Next() {
		var p repository.MonthlyPoint
		if err := rows.Scan(&p.Mes, &p.Litros); err != nil {
			return nil, fmt.Errorf("scan serie mensual: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
