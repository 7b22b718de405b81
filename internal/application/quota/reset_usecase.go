package quota

import (
	"context"
	"time"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/logger"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// Config parámetros del reset diario.
type Config struct {
	CutoffHour     int // hora local de corte (4 = 4:00 AM)
	UTCOffsetHours int // zona de operación, fija (-4 = Venezuela)
}

// ResetUseCase máquina de estados del reset diario de cupos.
//
// Se evalúa de forma perezosa, una vez, al inicio del login de cliente —
// nunca en lecturas ordinarias, para que un refresh del panel no borre el
// consumo recién registrado. Dos estados: pendiente (el reset de hoy no se
// aplicó) y hecho (aplicado); la fila sistema_config bloqueada FOR UPDATE
// serializa evaluaciones concurrentes.
type ResetUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	loc      *time.Location
	cutoff   int
	now      func() time.Time
}

// NewResetUseCase construye el caso de uso.
func NewResetUseCase(txRunner TxRunner, log *logger.Logger, cfg Config) *ResetUseCase {
	return &ResetUseCase{
		txRunner: txRunner,
		log:      log,
		loc:      tz.Location(cfg.UTCOffsetHours),
		cutoff:   cfg.CutoffHour,
		now:      time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo; para tests.
func (uc *ResetUseCase) WithNow(now func() time.Time) *ResetUseCase {
	uc.now = now
	return uc
}

// CheckAndReset evalúa y, si corresponde, ejecuta el reset diario en una sola
// transacción. Idempotente: re-ejecutarlo el mismo día es un no-op.
//
// Reglas, con `hoy` en la zona de operación:
//  1. fecha_ultimo_reset NULL: se inicializa a hoy SIN resetear. Evita una
//     tormenta de resets la primera vez que el campo se puebla (p. ej. tras
//     una migración de esquema).
//  2. fecha_ultimo_reset >= hoy: no-op. Una fecha futura indica desfase de
//     reloj; se registra como warning sin acción correctiva.
//  3. Día nuevo: antes de la hora de corte se difiere; después, se reponen
//     los saldos de clientes y subclientes activos y se fija la fecha, todo
//     o nada. Si el barrido falla, la fecha no cambia y el próximo login
//     reintenta la operación completa.
func (uc *ResetUseCase) CheckAndReset(ctx context.Context) error {
	nowOp := uc.now().In(uc.loc)
	hoy := tz.CivilDate(nowOp, uc.loc)

	return uc.txRunner.RunQuota(ctx, func(
		cfgRepo repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error {
		cfg, err := cfgRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if cfg == nil {
			return domain.ErrNotFound
		}

		if cfg.FechaUltimoReset == nil {
			uc.log.Warn().
				Str("fecha", hoy.Format("2006-01-02")).
				Msg("fecha_ultimo_reset era NULL; se inicializa a hoy sin resetear")
			return cfgRepo.SetFechaUltimoReset(hoy)
		}

		ultimo := tz.CivilDate(*cfg.FechaUltimoReset, time.UTC)
		if !ultimo.Before(hoy) {
			if ultimo.After(hoy) {
				uc.log.Warn().
					Str("ultimo_reset", ultimo.Format("2006-01-02")).
					Str("hoy", hoy.Format("2006-01-02")).
					Msg("fecha_ultimo_reset en el futuro; posible desfase de reloj")
			}
			return nil
		}

		if nowOp.Hour() < uc.cutoff {
			uc.log.Info().
				Int("hora", nowOp.Hour()).
				Int("corte", uc.cutoff).
				Msg("día nuevo antes de la hora de corte; reset diferido")
			return nil
		}

		clientes, err := clientRepo.RestoreAllBalances()
		if err != nil {
			return err
		}
		subclientes, err := subclientRepo.RestoreAllBalances()
		if err != nil {
			return err
		}
		if err := cfgRepo.SetFechaUltimoReset(hoy); err != nil {
			return err
		}

		uc.log.Info().
			Str("fecha", hoy.Format("2006-01-02")).
			Int64("clientes", clientes).
			Int64("subclientes", subclientes).
			Msg("reset diario ejecutado")
		return nil
	})
}

// ForceReset repone los saldos de todos los clientes y subclientes activos
// sin tocar fecha_ultimo_reset. Acción administrativa explícita.
func (uc *ResetUseCase) ForceReset(ctx context.Context) (int64, error) {
	var actualizados int64
	err := uc.txRunner.RunQuota(ctx, func(
		_ repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error {
		n, err := clientRepo.RestoreAllBalances()
		if err != nil {
			return err
		}
		if _, err := subclientRepo.RestoreAllBalances(); err != nil {
			return err
		}
		actualizados = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("clientes", actualizados).Msg("reset manual de litros ejecutado")
	return actualizados, nil
}
