package memory

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ quota.TxRunner = (*TxRunner)(nil)
var _ dispatch.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ client.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks contra el store serializados por el mutex.
// Toma un snapshot antes de fn y lo restaura si fn falla: los efectos son
// todo-o-nada, como una transacción real.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) run(fn func() error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snapshot := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.st = snapshot
		return err
	}
	return nil
}

// RunQuota transacción del reset diario.
func (r *TxRunner) RunQuota(_ context.Context, fn func(
	cfgRepo repository.ConfigRepository,
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
) error) error {
	return r.run(func() error {
		return fn(NewConfigRepository(r.s), NewClientRepository(r.s), NewSubclientRepository(r.s))
	})
}

// RunDispatch transacción de retiros y agendamientos.
func (r *TxRunner) RunDispatch(_ context.Context, fn func(
	cfgRepo repository.ConfigRepository,
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
	invRepo repository.InventoryRepository,
	resRepo repository.ReservationRepository,
	wdRepo repository.WithdrawalRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewConfigRepository(r.s), NewClientRepository(r.s), NewSubclientRepository(r.s),
			NewInventoryRepository(r.s), NewReservationRepository(r.s), NewWithdrawalRepository(r.s),
		)
	})
}

// RunPadron transacción de altas y ediciones del padrón.
func (r *TxRunner) RunPadron(_ context.Context, fn func(
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
) error) error {
	return r.run(func() error {
		return fn(NewClientRepository(r.s), NewSubclientRepository(r.s))
	})
}

// RunInventory transacción de mutaciones del libro de inventario.
func (r *TxRunner) RunInventory(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
) error) error {
	return r.run(func() error {
		return fn(NewInventoryRepository(r.s))
	})
}
