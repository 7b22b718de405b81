// Package system operaciones administrativas sobre la fila única de
// configuración: bloqueo global de agendamientos y el reporte del límite
// diario de gasolina.
package system

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/logger"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// UseCase administración del estado global del servicio.
type UseCase struct {
	cfgRepo repository.ConfigRepository
	resRepo repository.ReservationRepository
	log     *logger.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	cfgRepo repository.ConfigRepository,
	resRepo repository.ReservationRepository,
	log *logger.Logger,
	utcOffsetHours int,
) *UseCase {
	return &UseCase{
		cfgRepo: cfgRepo,
		resRepo: resRepo,
		log:     log,
		loc:     tz.Location(utcOffsetHours),
		now:     time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo; para tests.
func (uc *UseCase) WithNow(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Config estado actual de la configuración del sistema.
func (uc *UseCase) Config() (*entity.SystemConfig, error) {
	cfg, err := uc.cfgRepo.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	return cfg, nil
}

// SetBlocked activa o desactiva el bloqueo global de agendamientos. Con el
// bloqueo activo todo agendamiento nuevo falla; los ya creados no se tocan.
func (uc *UseCase) SetBlocked(ctx context.Context, bloqueado bool) error {
	if err := uc.cfgRepo.SetRetirosBloqueados(bloqueado); err != nil {
		return err
	}
	uc.log.Info().Bool("bloqueado", bloqueado).Msg("bloqueo de agendamientos actualizado")
	return nil
}

// DayLimit litros de gasolina de un día frente al límite diario.
type DayLimit struct {
	Fecha      time.Time
	Agendados  decimal.Decimal
	Procesados decimal.Decimal
	Disponible decimal.Decimal
}

// LimitsReport reporte del límite diario de gasolina para hoy y mañana.
type LimitsReport struct {
	LimiteDiario decimal.Decimal
	Hoy          DayLimit
	Manana       DayLimit
}

// DailyLimits arma el reporte informativo del límite diario de gasolina.
// El límite nunca bloquea un agendamiento; solo alimenta el panel para que
// el operador decida.
func (uc *UseCase) DailyLimits() (*LimitsReport, error) {
	cfg, err := uc.cfgRepo.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}

	hoy := tz.CivilDate(uc.now(), uc.loc)
	manana := hoy.AddDate(0, 0, 1)

	reporte := &LimitsReport{LimiteDiario: cfg.LimiteDiarioGasolina}
	for _, d := range []struct {
		fecha time.Time
		dst   *DayLimit
	}{
		{hoy, &reporte.Hoy},
		{manana, &reporte.Manana},
	} {
		agendados, entregados, err := uc.resRepo.SumByDate(d.fecha, entity.FuelGasoline)
		if err != nil {
			return nil, err
		}
		disponible := cfg.LimiteDiarioGasolina.Sub(agendados)
		if disponible.IsNegative() {
			disponible = decimal.Zero
		}
		*d.dst = DayLimit{
			Fecha:      d.fecha,
			Agendados:  agendados,
			Procesados: entregados,
			Disponible: disponible,
		}
	}
	return reporte, nil
}
