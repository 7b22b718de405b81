package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/auth"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/infrastructure/memory"
	"github.com/jhoicas/combustible-api/pkg/jwt"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

const testSecret = "secreto-de-test"

func newAuth(st *memory.Store, now time.Time) *auth.UseCase {
	reset := quota.NewResetUseCase(memory.NewTxRunner(st), logger.Nop(), quota.Config{
		CutoffHour:     4,
		UTCOffsetHours: -4,
	}).WithNow(func() time.Time { return now })
	return auth.NewUseCase(
		memory.NewUserRepository(st),
		memory.NewClientRepository(st),
		reset,
		logger.Nop(),
		auth.TokenConfig{Secret: testSecret, Issuer: "combustible-api", ExpMinutes: 480},
	)
}

func TestAdminLogin(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st, time.Now())
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, "operador", "clave-segura", "Operador Uno", true)
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	assert.NotEqual(t, "clave-segura", u.PasswordHash, "la clave nunca se guarda en claro")

	token, logueado, err := uc.AdminLogin(ctx, "operador", "clave-segura")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logueado.ID)

	id, tipo, _, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, jwt.ActorAdmin, tipo)
}

func TestAdminLogin_CredencialesInvalidas(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st, time.Now())
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "operador", "clave-segura", "Operador", false)
	require.NoError(t, err)

	// Clave equivocada y usuario inexistente devuelven el mismo error.
	_, _, err = uc.AdminLogin(ctx, "operador", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = uc.AdminLogin(ctx, "fantasma", "clave-segura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterUser_Duplicado(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st, time.Now())
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "operador", "clave-segura", "Uno", false)
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, "operador", "otra-clave-6", "Dos", false)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientLogin(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	clienteID := st.SeedClient(entity.Client{
		Cedula: "V-12345678", Nombre: "Transporte Aragua", Activo: true,
		AvailableGasoline: decimal.NewFromInt(100),
	})

	token, c, err := uc.ClientLogin(context.Background(), "V-12345678")
	require.NoError(t, err)
	assert.Equal(t, clienteID, c.ID)

	id, tipo, nombre, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, clienteID, id)
	assert.Equal(t, jwt.ActorCliente, tipo)
	assert.Equal(t, "Transporte Aragua", nombre)
}

// El login de cliente dispara el reset diario antes de devolver los saldos.
func TestClientLogin_EjecutaResetDiario(t *testing.T) {
	st := memory.NewStore()
	clienteID := st.SeedClient(entity.Client{
		Cedula: "V-1", Nombre: "Cliente", Activo: true,
		MonthlyGasoline:   decimal.NewFromInt(100),
		AvailableGasoline: decimal.NewFromInt(3),
	})
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	// 10:00 AM Caracas del día siguiente.
	uc := newAuth(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	_, c, err := uc.ClientLogin(context.Background(), "V-1")
	require.NoError(t, err)

	assert.True(t, c.AvailableGasoline.Equal(decimal.NewFromInt(100)),
		"el cliente debe ver sus litros ya repuestos")
	assert.Equal(t, clienteID, c.ID)
}

func TestClientLogin_Desconocido(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st, time.Now())
	_, _, err := uc.ClientLogin(context.Background(), "V-00000000")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClientLogin_Inactivo(t *testing.T) {
	st := memory.NewStore()
	st.SeedClient(entity.Client{Cedula: "V-9", Nombre: "Suspendido", Activo: false})
	uc := newAuth(st, time.Now())
	_, _, err := uc.ClientLogin(context.Background(), "V-9")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
