package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subclient sub-asignación de cupo que pertenece a exactamente un cliente padre.
// La suma de los cupos mensuales de los subclientes activos de un padre no puede
// exceder el cupo del padre (validado al crear y al editar el cupo del padre).
type Subclient struct {
	ID       int64
	ParentID int64 // cliente_padre_id
	Nombre   string
	Cedula   string
	Placa    string
	Activo   bool

	MonthlyGasoline decimal.Decimal
	MonthlyDiesel   decimal.Decimal

	AvailableGasoline decimal.Decimal
	AvailableDiesel   decimal.Decimal

	FechaRegistro time.Time
}

// Available saldo disponible del subcliente para el tipo dado.
func (s *Subclient) Available(f FuelType) decimal.Decimal {
	if f == FuelDiesel {
		return s.AvailableDiesel
	}
	return s.AvailableGasoline
}

// Monthly cupo mensual del subcliente para el tipo dado.
func (s *Subclient) Monthly(f FuelType) decimal.Decimal {
	if f == FuelDiesel {
		return s.MonthlyDiesel
	}
	return s.MonthlyGasoline
}
