package quota_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/infrastructure/memory"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

func newReset(st *memory.Store, now time.Time) *quota.ResetUseCase {
	return quota.NewResetUseCase(memory.NewTxRunner(st), logger.Nop(), quota.Config{
		CutoffHour:     4,
		UTCOffsetHours: -4,
	}).WithNow(func() time.Time { return now })
}

func seedConsumido(st *memory.Store) (int64, int64) {
	clienteID := st.SeedClient(entity.Client{
		Cedula: "V-1", Nombre: "Cliente", Activo: true,
		MonthlyGasoline:   decimal.NewFromInt(100),
		MonthlyDiesel:     decimal.NewFromInt(50),
		MonthlyTotal:      decimal.NewFromInt(150),
		AvailableGasoline: decimal.NewFromInt(10),
		AvailableDiesel:   decimal.NewFromInt(5),
		AvailableTotal:    decimal.NewFromInt(15),
	})
	subID := st.SeedSubclient(entity.Subclient{
		ParentID: clienteID, Nombre: "Sucursal", Activo: true,
		MonthlyGasoline:   decimal.NewFromInt(40),
		AvailableGasoline: decimal.NewFromInt(2),
	})
	return clienteID, subID
}

func fechaReset(st *memory.Store) *time.Time {
	cfg := st.Config()
	return cfg.FechaUltimoReset
}

// Con fecha_ultimo_reset NULL la primera evaluación solo inicializa la fecha;
// los saldos consumidos no se tocan.
func TestCheckAndReset_FechaNulaInicializaSinResetear(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	// 10:00 AM Caracas.
	uc := newReset(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))

	require.NoError(t, uc.CheckAndReset(context.Background()))

	f := fechaReset(st)
	require.NotNil(t, f)
	assert.True(t, f.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)))
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(10)))
}

func TestCheckAndReset_MismoDiaEsNoOp(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	hoy := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &hoy
	st.SetConfig(cfg)

	uc := newReset(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(10)))
}

// Día nuevo pero antes de la hora de corte: el reset se difiere y la fecha no
// cambia, para que el próximo login lo reintente.
func TestCheckAndReset_AntesDelCorteSeDifiere(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	// 3:59 AM Caracas = 7:59 UTC.
	uc := newReset(st, time.Date(2026, 8, 29, 7, 59, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(10)))
	assert.True(t, fechaReset(st).Equal(ayer))
}

func TestCheckAndReset_DespuesDelCorteRepone(t *testing.T) {
	st := memory.NewStore()
	clienteID, subID := seedConsumido(st)
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	// 4:00 AM Caracas en punto ya ejecuta.
	uc := newReset(st, time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	c := st.Client(clienteID)
	assert.True(t, c.AvailableGasoline.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.AvailableDiesel.Equal(decimal.NewFromInt(50)))
	assert.True(t, c.AvailableTotal.Equal(decimal.NewFromInt(150)))
	// El barrido incluye subclientes.
	assert.True(t, st.Subclient(subID).AvailableGasoline.Equal(decimal.NewFromInt(40)))
	assert.True(t, fechaReset(st).Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)))
}

// Reejecutar el mismo día tras un reset aplicado no borra el consumo nuevo.
func TestCheckAndReset_Idempotente(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	uc := newReset(st, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	// Consumo posterior al reset.
	c := st.Client(clienteID)
	c.AvailableGasoline = decimal.NewFromInt(60)
	st.SeedClient(*c)

	require.NoError(t, uc.CheckAndReset(context.Background()))
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(60)))
}

func TestCheckAndReset_FechaFuturaEsNoOp(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	manana := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &manana
	st.SetConfig(cfg)

	uc := newReset(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(10)))
	assert.True(t, fechaReset(st).Equal(manana))
}

func TestCheckAndReset_IgnoraInactivos(t *testing.T) {
	st := memory.NewStore()
	inactivoID := st.SeedClient(entity.Client{
		Cedula: "V-2", Nombre: "Suspendido", Activo: false,
		MonthlyGasoline:   decimal.NewFromInt(100),
		AvailableGasoline: decimal.NewFromInt(1),
	})
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	uc := newReset(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	require.NoError(t, uc.CheckAndReset(context.Background()))

	assert.True(t, st.Client(inactivoID).AvailableGasoline.Equal(decimal.NewFromInt(1)))
}

// El reset manual repone saldos pero no toca fecha_ultimo_reset.
func TestForceReset(t *testing.T) {
	st := memory.NewStore()
	clienteID, _ := seedConsumido(st)
	ayer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := st.Config()
	cfg.FechaUltimoReset = &ayer
	st.SetConfig(cfg)

	uc := newReset(st, time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
	n, err := uc.ForceReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, st.Client(clienteID).AvailableGasoline.Equal(decimal.NewFromInt(100)))
	assert.True(t, fechaReset(st).Equal(ayer))
}
