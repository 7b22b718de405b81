package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/infrastructure/memory"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

const offsetCaracas = -4

func newEngine(t *testing.T) (*dispatch.UseCase, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	runner := memory.NewTxRunner(st)
	uc := dispatch.NewUseCase(
		runner,
		memory.NewReservationRepository(st),
		memory.NewWithdrawalRepository(st),
		memory.NewClientRepository(st),
		logger.Nop(),
		offsetCaracas,
	).WithNow(func() time.Time {
		// 10:00 AM hora de Caracas del 2026-08-29.
		return time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	})
	return uc, st
}

func seedCliente(st *memory.Store, gasolina, gasoil int64) int64 {
	return st.SeedClient(entity.Client{
		Cedula:            "V-12345678",
		Nombre:            "Transporte Aragua C.A.",
		Activo:            true,
		MonthlyGasoline:   decimal.NewFromInt(gasolina),
		MonthlyDiesel:     decimal.NewFromInt(gasoil),
		MonthlyTotal:      decimal.NewFromInt(gasolina + gasoil),
		AvailableGasoline: decimal.NewFromInt(gasolina),
		AvailableDiesel:   decimal.NewFromInt(gasoil),
		AvailableTotal:    decimal.NewFromInt(gasolina + gasoil),
	})
}

func seedInventario(t *testing.T, st *memory.Store, fuel entity.FuelType, litros int64) {
	t.Helper()
	inv := inventory.NewUseCase(memory.NewTxRunner(st), memory.NewInventoryRepository(st))
	_, err := inv.Replenish(context.Background(), fuel, decimal.NewFromInt(litros), 1, "carga inicial")
	require.NoError(t, err)
}

func TestWithdraw(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 50)
	seedInventario(t, st, entity.FuelGasoline, 500)

	res, err := uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(30),
		UsuarioID: 1,
	})
	require.NoError(t, err)
	assert.True(t, res.NuevoSaldo.Equal(decimal.NewFromInt(70)))

	c := st.Client(clienteID)
	assert.True(t, c.AvailableGasoline.Equal(decimal.NewFromInt(70)))
	assert.True(t, c.AvailableDiesel.Equal(decimal.NewFromInt(50)), "el gasoil no debe tocarse")
	assert.True(t, c.AvailableTotal.Equal(decimal.NewFromInt(120)))

	// El retiro queda en el historial y el stock baja en la misma operación.
	require.Len(t, st.Withdrawals(), 1)
	entradas := st.InventoryEntries()
	require.Len(t, entradas, 2)
	assert.True(t, entradas[1].LitersAfter.Equal(decimal.NewFromInt(470)))
}

func TestWithdraw_SaldoInsuficiente(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 20, 0)

	_, err := uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(21),
		UsuarioID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nada cambió.
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(20)))
	assert.Empty(t, st.Withdrawals())
}

func TestWithdraw_SinLibroDeInventario(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)

	// Sin filas de inventario el retiro procede igual: el saldo manda.
	_, err := uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(40),
		UsuarioID: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, st.InventoryEntries())
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(60)))
}

func TestWithdraw_ClienteInexistente(t *testing.T) {
	uc, _ := newEngine(t)
	_, err := uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: 999,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithdraw_EntradaInvalida(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)

	_, err := uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Withdraw(context.Background(), dispatch.WithdrawInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelType("kerosene"),
		Litros:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserve(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 50)
	seedInventario(t, st, entity.FuelDiesel, 1000)
	fecha := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID:     clienteID,
		Fuel:          entity.FuelDiesel,
		Litros:        decimal.NewFromInt(30),
		FechaAgendada: fecha,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CodigoTicket)
	assert.True(t, res.NuevoSaldo.Equal(decimal.NewFromInt(20)))
	assert.True(t, res.NuevoInventario.Equal(decimal.NewFromInt(970)))

	guardado := st.Reservation(res.ID)
	require.NotNil(t, guardado)
	assert.Equal(t, entity.ReservationPending, guardado.Estado)
	assert.True(t, guardado.FechaAgendada.Equal(fecha))

	// Saldo e inventario descontados al agendar, no al entregar.
	assert.True(t, st.Client(clienteID).AvailableDiesel.Equal(decimal.NewFromInt(20)))
}

func TestReserve_FechaPorDefectoEsManana(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	seedInventario(t, st, entity.FuelGasoline, 100)

	res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, res.FechaAgendada.Equal(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
}

func TestReserve_ServicioBloqueado(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	seedInventario(t, st, entity.FuelGasoline, 100)
	st.SetConfig(entity.SystemConfig{ID: entity.SystemConfigID, RetirosBloqueados: true})

	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrServiceBlocked)
}

func TestReserve_InventarioInsuficiente(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	seedInventario(t, st, entity.FuelGasoline, 5)

	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(100)))
}

func TestReserve_SinLibroDeInventario(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)

	// A diferencia del retiro, el agendamiento sí exige libro con stock.
	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestReserve_SaldoInsuficiente(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 20, 0)
	seedInventario(t, st, entity.FuelGasoline, 1000)

	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, st.Withdrawals())
	// El pre-chequeo de inventario no debe dejar filas.
	assert.Len(t, st.InventoryEntries(), 1)
}

func TestReserve_ConSubcliente(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	subID := st.SeedSubclient(entity.Subclient{
		ParentID:          clienteID,
		Nombre:            "Sucursal Maracay",
		Activo:            true,
		MonthlyGasoline:   decimal.NewFromInt(40),
		AvailableGasoline: decimal.NewFromInt(40),
	})
	seedInventario(t, st, entity.FuelGasoline, 1000)

	res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID:    clienteID,
		SubclienteID: &subID,
		Fuel:         entity.FuelGasoline,
		Litros:       decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	require.NotNil(t, st.Reservation(res.ID).SubclienteID)

	// Doble descuento: el subcliente consume del padre y de su propio cupo.
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(85)))
	assert.True(t, st.Subclient(subID).AvailableGasoline.Equal(decimal.NewFromInt(25)))
}

func TestReserve_SubclienteDeOtroCliente(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	otroID := st.SeedClient(entity.Client{
		Cedula: "V-99", Nombre: "Otro", Activo: true,
		AvailableGasoline: decimal.NewFromInt(100),
	})
	subID := st.SeedSubclient(entity.Subclient{
		ParentID: otroID, Nombre: "Ajeno", Activo: true,
		AvailableGasoline: decimal.NewFromInt(100),
	})
	seedInventario(t, st, entity.FuelGasoline, 1000)

	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID:    clienteID,
		SubclienteID: &subID,
		Fuel:         entity.FuelGasoline,
		Litros:       decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_SaldoSubclienteInsuficienteRevierteTodo(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	subID := st.SeedSubclient(entity.Subclient{
		ParentID: clienteID, Nombre: "Sucursal", Activo: true,
		MonthlyGasoline:   decimal.NewFromInt(40),
		AvailableGasoline: decimal.NewFromInt(5),
	})
	seedInventario(t, st, entity.FuelGasoline, 1000)

	_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID:    clienteID,
		SubclienteID: &subID,
		Fuel:         entity.FuelGasoline,
		Litros:       decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Todo o nada: el descuento del padre y el ticket se revirtieron.
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(100)))
	lista, err := uc.ReservationsByDate(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestReserve_TicketsSecuencialesPorFecha(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 1000, 0)
	seedInventario(t, st, entity.FuelGasoline, 10000)
	fecha := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	otraFecha := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	for want := 1; want <= 3; want++ {
		res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
			ClienteID:     clienteID,
			Fuel:          entity.FuelGasoline,
			Litros:        decimal.NewFromInt(10),
			FechaAgendada: fecha,
		})
		require.NoError(t, err)
		assert.Equal(t, want, res.CodigoTicket)
	}

	// La secuencia reinicia por fecha.
	res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID:     clienteID,
		Fuel:          entity.FuelGasoline,
		Litros:        decimal.NewFromInt(10),
		FechaAgendada: otraFecha,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CodigoTicket)
}

func TestMarkDelivered(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	seedInventario(t, st, entity.FuelGasoline, 1000)

	res, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
		ClienteID: clienteID,
		Fuel:      entity.FuelGasoline,
		Litros:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	saldoAntes := st.Client(clienteID).AvailableGasoline
	require.NoError(t, uc.MarkDelivered(context.Background(), res.ID))
	assert.Equal(t, entity.ReservationDelivered, st.Reservation(res.ID).Estado)
	// La entrega solo cambia estado; el descuento ya ocurrió al agendar.
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(saldoAntes))

	// Entregar dos veces es un conflicto, no un no-op silencioso.
	assert.ErrorIs(t, uc.MarkDelivered(context.Background(), res.ID), domain.ErrConflict)
}

func TestMarkDelivered_Inexistente(t *testing.T) {
	uc, _ := newEngine(t)
	assert.ErrorIs(t, uc.MarkDelivered(context.Background(), 404), domain.ErrNotFound)
}

func TestReservationsByClient(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 1000, 0)
	otroID := seedCliente(st, 1000, 0)
	seedInventario(t, st, entity.FuelGasoline, 10000)

	for _, id := range []int64{clienteID, clienteID, otroID} {
		_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
			ClienteID: id,
			Fuel:      entity.FuelGasoline,
			Litros:    decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	propios, err := uc.ReservationsByClient(clienteID)
	require.NoError(t, err)
	assert.Len(t, propios, 2)
}

// Con N agendamientos concurrentes sobre el mismo cliente solo pueden
// confirmar floor(saldo/litros); el resto falla por saldo y el saldo final
// nunca baja de cero.
func TestReserve_ConcurrentesNoExcedenSaldo(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 100, 0)
	seedInventario(t, st, entity.FuelGasoline, 10000)

	const intentos = 10
	errs := make(chan error, intentos)
	var wg sync.WaitGroup
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
				ClienteID: clienteID,
				Fuel:      entity.FuelGasoline,
				Litros:    decimal.NewFromInt(30),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	confirmados := 0
	for err := range errs {
		if err == nil {
			confirmados++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	}
	// floor(100/30) = 3.
	assert.Equal(t, 3, confirmados)

	c := st.Client(clienteID)
	assert.True(t, c.AvailableGasoline.Equal(decimal.NewFromInt(10)),
		"saldo final 100 - 3*30 = 10")
	assert.False(t, c.AvailableGasoline.IsNegative())

	// Cada agendamiento confirmado descontó inventario exactamente una vez y
	// el total corrido del libro cuadra con los litros confirmados.
	entradas := st.InventoryEntries()
	require.Len(t, entradas, 1+confirmados)
	assert.True(t, entradas[len(entradas)-1].LitersAfter.Equal(decimal.NewFromInt(10000-3*30)))

	pendientes, err := uc.ReservationsByDate(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, pendientes, confirmados)
}

// Los tickets de una fecha quedan únicos y contiguos aunque los
// agendamientos se creen en paralelo.
func TestReserve_TicketsContiguosBajoConcurrencia(t *testing.T) {
	uc, st := newEngine(t)
	clienteID := seedCliente(st, 1000, 0)
	seedInventario(t, st, entity.FuelGasoline, 10000)

	const intentos = 8
	var wg sync.WaitGroup
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Reserve(context.Background(), dispatch.ReserveInput{
				ClienteID: clienteID,
				Fuel:      entity.FuelGasoline,
				Litros:    decimal.NewFromInt(10),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lista, err := uc.ReservationsByDate(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lista, intentos)

	vistos := make(map[int]bool, intentos)
	for _, r := range lista {
		assert.False(t, vistos[r.CodigoTicket], "ticket %d repetido", r.CodigoTicket)
		vistos[r.CodigoTicket] = true
	}
	for ticket := 1; ticket <= intentos; ticket++ {
		assert.True(t, vistos[ticket], "falta el ticket %d", ticket)
	}
}
