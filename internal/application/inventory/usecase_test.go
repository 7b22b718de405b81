package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/infrastructure/memory"
)

func newInventario() (*inventory.UseCase, *memory.Store) {
	st := memory.NewStore()
	return inventory.NewUseCase(memory.NewTxRunner(st), memory.NewInventoryRepository(st)), st
}

func TestCurrentStock_SinLibroEsCero(t *testing.T) {
	uc, _ := newInventario()
	stock, err := uc.CurrentStock(entity.FuelGasoline)
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

func TestReplenish(t *testing.T) {
	uc, st := newInventario()
	ctx := context.Background()

	nuevo, err := uc.Replenish(ctx, entity.FuelGasoline, decimal.NewFromInt(500), 1, "carga inicial")
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(500)))

	nuevo, err = uc.Replenish(ctx, entity.FuelGasoline, decimal.NewFromInt(250), 1, "segunda carga")
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(750)))

	// El libro acumula filas, nunca las reescribe.
	entradas := st.InventoryEntries()
	require.Len(t, entradas, 2)
	assert.True(t, entradas[0].LitersIn.Equal(decimal.NewFromInt(500)))
	assert.True(t, entradas[1].LitersAfter.Equal(decimal.NewFromInt(750)))

	stock, err := uc.CurrentStock(entity.FuelGasoline)
	require.NoError(t, err)
	assert.True(t, stock.Equal(decimal.NewFromInt(750)))
}

func TestReplenish_PorCombustible(t *testing.T) {
	uc, _ := newInventario()
	ctx := context.Background()

	_, err := uc.Replenish(ctx, entity.FuelGasoline, decimal.NewFromInt(100), 1, "")
	require.NoError(t, err)
	_, err = uc.Replenish(ctx, entity.FuelDiesel, decimal.NewFromInt(300), 1, "")
	require.NoError(t, err)

	estado, err := uc.CurrentState()
	require.NoError(t, err)
	assert.True(t, estado[entity.FuelGasoline].Equal(decimal.NewFromInt(100)))
	assert.True(t, estado[entity.FuelDiesel].Equal(decimal.NewFromInt(300)))
}

func TestReplenish_EntradaInvalida(t *testing.T) {
	uc, _ := newInventario()
	_, err := uc.Replenish(context.Background(), entity.FuelGasoline, decimal.Zero, 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Replenish(context.Background(), entity.FuelType("kerosene"), decimal.NewFromInt(10), 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetToZero(t *testing.T) {
	uc, st := newInventario()
	ctx := context.Background()
	_, err := uc.Replenish(ctx, entity.FuelGasoline, decimal.NewFromInt(500), 1, "")
	require.NoError(t, err)

	require.NoError(t, uc.ResetToZero(ctx, 1))

	stock, err := uc.CurrentStock(entity.FuelGasoline)
	require.NoError(t, err)
	assert.True(t, stock.IsZero())

	// El cero se alcanza con una fila de ajuste; el historial se conserva.
	entradas := st.InventoryEntries()
	require.Len(t, entradas, 2)
	assert.True(t, entradas[1].LitersIn.Equal(decimal.NewFromInt(-500)))

	// Sin libro de gasoil no se agrega fila alguna, y repetir el reset con
	// stock ya en cero tampoco.
	require.NoError(t, uc.ResetToZero(ctx, 1))
	assert.Len(t, st.InventoryEntries(), 2)
}

func TestDebit(t *testing.T) {
	uc, st := newInventario()
	ctx := context.Background()
	_, err := uc.Replenish(ctx, entity.FuelDiesel, decimal.NewFromInt(100), 1, "")
	require.NoError(t, err)

	repo := memory.NewInventoryRepository(st)
	usuario := int64(1)
	nuevo, err := inventory.Debit(repo, entity.FuelDiesel, decimal.NewFromInt(40), &usuario, "despacho")
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(60)))

	_, err = inventory.Debit(repo, entity.FuelDiesel, decimal.NewFromInt(61), &usuario, "despacho")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	// Sin libro el débito estricto también falla.
	_, err = inventory.Debit(repo, entity.FuelGasoline, decimal.NewFromInt(1), &usuario, "despacho")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestDebitIfTracked(t *testing.T) {
	uc, st := newInventario()
	ctx := context.Background()
	repo := memory.NewInventoryRepository(st)
	usuario := int64(1)

	// Sin libro: sin efecto y sin error.
	_, tracked, err := inventory.DebitIfTracked(repo, entity.FuelGasoline, decimal.NewFromInt(10), &usuario, "retiro")
	require.NoError(t, err)
	assert.False(t, tracked)
	assert.Empty(t, st.InventoryEntries())

	// Con libro se comporta como el débito estricto.
	_, err = uc.Replenish(ctx, entity.FuelGasoline, decimal.NewFromInt(50), 1, "")
	require.NoError(t, err)
	nuevo, tracked, err := inventory.DebitIfTracked(repo, entity.FuelGasoline, decimal.NewFromInt(10), &usuario, "retiro")
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(40)))

	_, tracked, err = inventory.DebitIfTracked(repo, entity.FuelGasoline, decimal.NewFromInt(100), &usuario, "retiro")
	assert.True(t, tracked)
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}
