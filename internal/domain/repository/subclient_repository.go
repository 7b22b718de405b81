package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// SubclientRepository puerto de persistencia para subclientes.
type SubclientRepository interface {
	GetByID(id int64) (*entity.Subclient, error)
	// GetForUpdate bloquea la fila del subcliente (SELECT FOR UPDATE).
	GetForUpdate(id int64) (*entity.Subclient, error)
	ListByParent(parentID int64) ([]entity.Subclient, error)
	Create(s *entity.Subclient) (int64, error)

	// SumMonthlyByParent suma de cupos mensuales (por combustible) de los
	// subclientes activos del padre. Se usa para validar sub-asignaciones.
	SumMonthlyByParent(parentID int64) (gasolina, gasoil decimal.Decimal, err error)

	// DecrementBalance descuenta litros del saldo del combustible dado.
	// Mismas garantías que ClientRepository.DecrementBalance.
	DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error

	// RestoreAllBalances repone los saldos de todos los subclientes activos.
	RestoreAllBalances() (int64, error)
}
