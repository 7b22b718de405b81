package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ quota.TxRunner = (*TxRunner)(nil)
var _ dispatch.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ client.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Commit solo si fn devuelve nil; cualquier otro
// camino hace Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, op string, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Transient(op, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if domain.IsBusinessError(err) {
			return err
		}
		return domain.Transient(op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Transient(op, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunQuota transacción del reset diario de cupos.
func (r *TxRunner) RunQuota(ctx context.Context, fn func(
	cfgRepo repository.ConfigRepository,
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
) error) error {
	return r.run(ctx, "quota", func(tx Querier) error {
		return fn(NewConfigRepository(tx), NewClientRepository(tx), NewSubclientRepository(tx))
	})
}

// RunDispatch transacción de retiros y agendamientos.
func (r *TxRunner) RunDispatch(ctx context.Context, fn func(
	cfgRepo repository.ConfigRepository,
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
	invRepo repository.InventoryRepository,
	resRepo repository.ReservationRepository,
	wdRepo repository.WithdrawalRepository,
) error) error {
	return r.run(ctx, "dispatch", func(tx Querier) error {
		return fn(
			NewConfigRepository(tx), NewClientRepository(tx), NewSubclientRepository(tx),
			NewInventoryRepository(tx), NewReservationRepository(tx), NewWithdrawalRepository(tx),
		)
	})
}

// RunPadron transacción de altas y ediciones del padrón.
func (r *TxRunner) RunPadron(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
) error) error {
	return r.run(ctx, "padron", func(tx Querier) error {
		return fn(NewClientRepository(tx), NewSubclientRepository(tx))
	})
}

// RunInventory transacción de mutaciones del libro de inventario.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
) error) error {
	return r.run(ctx, "inventory", func(tx Querier) error {
		return fn(NewInventoryRepository(tx))
	})
}
