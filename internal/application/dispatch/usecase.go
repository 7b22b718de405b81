package dispatch

import (
	"time"

	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/logger"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// UseCase motor de retiros y agendamientos.
//
// Valida y aplica los descuentos de saldo sobre dos flujos: retiro inmediato
// (combustible ya despachado) y agendamiento (despacho futuro con ticket y
// ciclo pendiente/entregado). Cada operación corre en una transacción con
// bloqueo de fila sobre todo lo que lee-y-escribe; los saldos nunca quedan
// negativos en estado confirmado.
type UseCase struct {
	txRunner TxRunner
	// Repos atados al pool, solo para lecturas fuera de transacción.
	resRepo    repository.ReservationRepository
	wdRepo     repository.WithdrawalRepository
	clientRepo repository.ClientRepository

	log *logger.Logger
	loc *time.Location
	now func() time.Time
}

// NewUseCase construye el motor. utcOffsetHours es la zona de operación fija.
func NewUseCase(
	txRunner TxRunner,
	resRepo repository.ReservationRepository,
	wdRepo repository.WithdrawalRepository,
	clientRepo repository.ClientRepository,
	log *logger.Logger,
	utcOffsetHours int,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		resRepo:    resRepo,
		wdRepo:     wdRepo,
		clientRepo: clientRepo,
		log:        log,
		loc:        tz.Location(utcOffsetHours),
		now:        time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo; para tests.
func (uc *UseCase) WithNow(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}
