package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// ParseFuelType debe aceptar los dos tipos válidos, normalizar mayúsculas y
// espacios, y tratar la cadena vacía como gasolina (comportamiento histórico).
func TestParseFuelType(t *testing.T) {
	cases := []struct {
		in   string
		want entity.FuelType
	}{
		{"gasolina", entity.FuelGasoline},
		{"gasoil", entity.FuelDiesel},
		{"  GASOIL ", entity.FuelDiesel},
		{"", entity.FuelGasoline},
	}
	for _, c := range cases {
		got, err := entity.ParseFuelType(c.in)
		require.NoError(t, err, "entrada %q debe ser válida", c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestParseFuelType_Invalido(t *testing.T) {
	_, err := entity.ParseFuelType("kerosene")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El despacho tipado por combustible debe resolver el saldo y el cupo de la
// columna correcta, sin interpolar cadenas.
func TestClient_DespachoTipado(t *testing.T) {
	c := &entity.Client{
		MonthlyGasoline:   decimal.NewFromInt(100),
		MonthlyDiesel:     decimal.NewFromInt(50),
		AvailableGasoline: decimal.NewFromInt(40),
		AvailableDiesel:   decimal.NewFromInt(10),
	}
	assert.True(t, c.Available(entity.FuelGasoline).Equal(decimal.NewFromInt(40)))
	assert.True(t, c.Available(entity.FuelDiesel).Equal(decimal.NewFromInt(10)))
	assert.True(t, c.Monthly(entity.FuelGasoline).Equal(decimal.NewFromInt(100)))
	assert.True(t, c.Monthly(entity.FuelDiesel).Equal(decimal.NewFromInt(50)))
}
