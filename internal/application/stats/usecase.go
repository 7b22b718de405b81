// Package stats expone las consultas agregadas del panel: totales generales
// y estadísticas de despacho. Solo lectura.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// UseCase consultas de estadísticas.
type UseCase struct {
	statsRepo repository.StatsRepository
	loc       *time.Location
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(statsRepo repository.StatsRepository, utcOffsetHours int) *UseCase {
	return &UseCase{
		statsRepo: statsRepo,
		loc:       tz.Location(utcOffsetHours),
		now:       time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo; para tests.
func (uc *UseCase) WithNow(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// General totales generales del sistema.
type General struct {
	TotalClientes        int64
	TotalLitrosRetirados decimal.Decimal
}

// GeneralStats clientes activos y litros retirados históricos.
func (uc *UseCase) GeneralStats() (*General, error) {
	clientes, err := uc.statsRepo.TotalClientesActivos()
	if err != nil {
		return nil, err
	}
	litros, err := uc.statsRepo.TotalLitrosRetirados()
	if err != nil {
		return nil, err
	}
	return &General{TotalClientes: clientes, TotalLitrosRetirados: litros}, nil
}

// Dispatch estadísticas de despacho alrededor de la fecha de referencia.
type Dispatch struct {
	Totales            repository.DispatchTotals
	ClientesActivosHoy int64
	PorDia             []repository.DailyPoint
	PorMes             []repository.MonthlyPoint
}

// DispatchStats totales de hoy/mes/año más las series de la última semana y
// del último año, en la zona de operación.
func (uc *UseCase) DispatchStats() (*Dispatch, error) {
	ref := tz.CivilDate(uc.now(), uc.loc)

	totales, err := uc.statsRepo.DispatchTotals(ref)
	if err != nil {
		return nil, err
	}
	activos, err := uc.statsRepo.ClientesActivosHoy(ref)
	if err != nil {
		return nil, err
	}
	porDia, err := uc.statsRepo.SerieDiaria(ref)
	if err != nil {
		return nil, err
	}
	porMes, err := uc.statsRepo.SerieMensual(ref)
	if err != nil {
		return nil, err
	}
	return &Dispatch{
		Totales:            *totales,
		ClientesActivosHoy: activos,
		PorDia:             porDia,
		PorMes:             porMes,
	}, nil
}
