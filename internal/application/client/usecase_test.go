package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/infrastructure/memory"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

func newPadron() (*client.UseCase, *memory.Store) {
	st := memory.NewStore()
	uc := client.NewUseCase(
		memory.NewTxRunner(st),
		memory.NewClientRepository(st),
		memory.NewSubclientRepository(st),
		logger.Nop(),
		-4,
	).WithNow(func() time.Time {
		return time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	})
	return uc, st
}

func TestCreate(t *testing.T) {
	uc, st := newPadron()

	c, err := uc.Create(context.Background(), client.CreateInput{
		Nombre:      "Transporte Pérez C.A.",
		Cedula:      "J-123456789",
		MesGasolina: decimal.NewFromInt(300),
		MesGasoil:   decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	require.NotZero(t, c.ID)

	// Los saldos arrancan iguales al cupo y el agregado es la suma.
	guardado := st.Client(c.ID)
	assert.True(t, guardado.AvailableGasoline.Equal(decimal.NewFromInt(300)))
	assert.True(t, guardado.AvailableDiesel.Equal(decimal.NewFromInt(200)))
	assert.True(t, guardado.AvailableTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, guardado.MonthlyTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, guardado.Activo)
}

func TestCreate_CedulaDuplicada(t *testing.T) {
	uc, _ := newPadron()
	ctx := context.Background()

	_, err := uc.Create(ctx, client.CreateInput{Nombre: "Uno", Cedula: "V-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, client.CreateInput{Nombre: "Dos", Cedula: "V-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newPadron()
	ctx := context.Background()

	_, err := uc.Create(ctx, client.CreateInput{Nombre: "  ", Cedula: "V-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, client.CreateInput{
		Nombre: "Negativo", Cedula: "V-2",
		MesGasolina: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Editar el cupo no toca los saldos del ciclo en curso.
func TestUpdate_NoTocaSaldos(t *testing.T) {
	uc, st := newPadron()
	ctx := context.Background()

	c, err := uc.Create(ctx, client.CreateInput{
		Nombre: "Cliente", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Consumo del día.
	consumido := st.Client(c.ID)
	consumido.AvailableGasoline = decimal.NewFromInt(40)
	st.SeedClient(*consumido)

	_, err = uc.Update(ctx, c.ID, client.CreateInput{
		Nombre: "Cliente", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	actual := st.Client(c.ID)
	assert.True(t, actual.MonthlyGasoline.Equal(decimal.NewFromInt(500)))
	assert.True(t, actual.AvailableGasoline.Equal(decimal.NewFromInt(40)),
		"el nuevo cupo rige desde el próximo reset")
}

func TestUpdate_Inexistente(t *testing.T) {
	uc, _ := newPadron()
	_, err := uc.Update(context.Background(), 999, client.CreateInput{
		Nombre: "Nadie", Cedula: "V-0",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Reducir el cupo del padre por debajo de lo repartido a los hijos es un
// conflicto.
func TestUpdate_CupoMenorQueSubclientes(t *testing.T) {
	uc, _ := newPadron()
	ctx := context.Background()

	c, err := uc.Create(ctx, client.CreateInput{
		Nombre: "Padre", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = uc.CreateSubclient(ctx, c.ID, client.SubclientInput{
		Nombre: "Hijo", MesGasolina: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, c.ID, client.CreateInput{
		Nombre: "Padre", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con cupo suficiente la edición procede.
	_, err = uc.Update(ctx, c.ID, client.CreateInput{
		Nombre: "Padre", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(60),
	})
	assert.NoError(t, err)
}

func TestDeactivate(t *testing.T) {
	uc, st := newPadron()
	ctx := context.Background()

	c, err := uc.Create(ctx, client.CreateInput{Nombre: "Cliente", Cedula: "V-1"})
	require.NoError(t, err)
	require.NoError(t, uc.Deactivate(ctx, c.ID))
	assert.False(t, st.Client(c.ID).Activo)

	// Ya inactivo no se encuentra para una segunda baja.
	assert.ErrorIs(t, uc.Deactivate(ctx, c.ID), domain.ErrNotFound)
}

func TestGet_ConRetiradosDelMes(t *testing.T) {
	uc, st := newPadron()
	ctx := context.Background()

	c, err := uc.Create(ctx, client.CreateInput{
		Nombre: "Cliente", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	wd := memory.NewWithdrawalRepository(st)
	_, err = wd.Create(&entity.Withdrawal{
		ClienteID: c.ID, FuelType: entity.FuelGasoline,
		Litros: decimal.NewFromInt(30),
		Fecha:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	// Retiro de otro mes: no cuenta.
	_, err = wd.Create(&entity.Withdrawal{
		ClienteID: c.ID, FuelType: entity.FuelGasoline,
		Litros: decimal.NewFromInt(99),
		Fecha:  time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, retirados, err := uc.Get(c.ID)
	require.NoError(t, err)
	assert.True(t, retirados.Equal(decimal.NewFromInt(30)))
}

func TestByTelefono(t *testing.T) {
	uc, _ := newPadron()
	ctx := context.Background()

	creado, err := uc.Create(ctx, client.CreateInput{
		Nombre: "Con Teléfono", Cedula: "V-77", Telefono: "0414-5551234",
	})
	require.NoError(t, err)

	c, err := uc.ByTelefono("0414-5551234")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, c.ID)

	_, err = uc.ByTelefono("0999-0000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.ByTelefono("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_InsensibleAAcentos(t *testing.T) {
	uc, _ := newPadron()
	ctx := context.Background()

	for _, in := range []client.CreateInput{
		{Nombre: "Transporte Pérez", Cedula: "V-1"},
		{Nombre: "Distribuidora Andrés", Cedula: "V-2", Direccion: "Av. Bolívar"},
		{Nombre: "Otro Rubro", Cedula: "V-3"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := uc.Search("perez")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Transporte Pérez", res[0].Nombre)

	// También sobre la dirección, y con acentos en la consulta.
	res, err = uc.Search("bolivar")
	require.NoError(t, err)
	assert.Len(t, res, 1)
	res, err = uc.Search("PÉREZ")
	require.NoError(t, err)
	assert.Len(t, res, 1)

	// Búsqueda vacía lista todos.
	res, err = uc.Search("")
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestCreateSubclient(t *testing.T) {
	uc, st := newPadron()
	ctx := context.Background()

	c, err := uc.Create(ctx, client.CreateInput{
		Nombre: "Padre", Cedula: "V-1",
		MesGasolina: decimal.NewFromInt(100),
		MesGasoil:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	sc, err := uc.CreateSubclient(ctx, c.ID, client.SubclientInput{
		Nombre:      "Sucursal Maracay",
		MesGasolina: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, sc.ParentID)
	assert.True(t, st.Subclient(sc.ID).AvailableGasoline.Equal(decimal.NewFromInt(60)))

	// Un segundo hijo que excede el cupo restante del padre no entra.
	_, err = uc.CreateSubclient(ctx, c.ID, client.SubclientInput{
		Nombre:      "Sucursal Valencia",
		MesGasolina: decimal.NewFromInt(41),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con el restante exacto sí.
	_, err = uc.CreateSubclient(ctx, c.ID, client.SubclientInput{
		Nombre:      "Sucursal Valencia",
		MesGasolina: decimal.NewFromInt(40),
	})
	assert.NoError(t, err)

	hijos, err := uc.Subclients(c.ID)
	require.NoError(t, err)
	assert.Len(t, hijos, 2)
}

func TestCreateSubclient_PadreInexistente(t *testing.T) {
	uc, _ := newPadron()
	_, err := uc.CreateSubclient(context.Background(), 404, client.SubclientInput{Nombre: "Hijo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
