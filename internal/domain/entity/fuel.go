package entity

import (
	"strings"

	"github.com/jhoicas/combustible-api/internal/domain"
)

// FuelType tipo de combustible. Conjunto cerrado: gasolina y gasoil.
// Todos los saldos y el inventario se particionan por este tipo.
type FuelType string

const (
	FuelGasoline FuelType = "gasolina"
	FuelDiesel   FuelType = "gasoil"
)

// FuelTypes todos los tipos válidos, en orden estable para reportes.
var FuelTypes = []FuelType{FuelGasoline, FuelDiesel}

// ParseFuelType normaliza y valida un tipo de combustible recibido por la API.
// Cadena vacía se interpreta como gasolina (comportamiento histórico del sistema).
func ParseFuelType(s string) (FuelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FuelGasoline):
		return FuelGasoline, nil
	case string(FuelDiesel):
		return FuelDiesel, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (f FuelType) Valid() bool {
	return f == FuelGasoline || f == FuelDiesel
}

func (f FuelType) String() string { return string(f) }
