package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client cliente con cupo mensual de combustible.
// Mantiene saldos por tipo de combustible y el agregado legado
// AvailableTotal = suma de los saldos por tipo, que debe actualizarse
// en cada mutación de saldo.
type Client struct {
	ID        int64
	Cedula    string
	Nombre    string
	Telefono  string
	Direccion string
	RIF       string
	Placa     string
	Categoria string
	Huella    bool // autorizado por huella dactilar
	Activo    bool

	// Cupos mensuales por combustible y agregado legado.
	MonthlyGasoline decimal.Decimal
	MonthlyDiesel   decimal.Decimal
	MonthlyTotal    decimal.Decimal

	// Saldos disponibles por combustible y agregado legado.
	AvailableGasoline decimal.Decimal
	AvailableDiesel   decimal.Decimal
	AvailableTotal    decimal.Decimal

	FechaRegistro time.Time
}

// Available saldo disponible para el tipo de combustible dado.
// Despacho tipado: nunca se interpola el tipo en nombres de columna.
func (c *Client) Available(f FuelType) decimal.Decimal {
	if f == FuelDiesel {
		return c.AvailableDiesel
	}
	return c.AvailableGasoline
}

// Monthly cupo mensual para el tipo de combustible dado.
func (c *Client) Monthly(f FuelType) decimal.Decimal {
	if f == FuelDiesel {
		return c.MonthlyDiesel
	}
	return c.MonthlyGasoline
}
