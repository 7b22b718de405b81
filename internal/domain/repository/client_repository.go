package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes y sus saldos.
// Los saldos son propiedad exclusiva de este puerto: ningún otro componente
// los lee ni los escribe directamente.
type ClientRepository interface {
	GetByID(id int64) (*entity.Client, error)
	// GetActiveByID devuelve nil si el cliente no existe o está inactivo.
	GetActiveByID(id int64) (*entity.Client, error)
	GetByCedula(cedula string) (*entity.Client, error)
	GetByTelefono(telefono string) (*entity.Client, error)
	// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE).
	// Usar dentro de una transacción antes de leer-y-escribir saldos.
	GetForUpdate(id int64) (*entity.Client, error)
	List(busqueda string) ([]entity.Client, error)
	Create(c *entity.Client) (int64, error)
	Update(c *entity.Client) error

	// DecrementBalance descuenta litros del saldo del combustible dado y del
	// agregado legado en una sola sentencia relativa y guardada: falla con
	// domain.ErrInsufficientBalance si dejaría el saldo negativo y con
	// domain.ErrNotFound si el cliente no existe o está inactivo. Es la
	// última guarda dentro de la transacción; el caller ya debió validar.
	DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error

	// RestoreAllBalances repone litros_disponibles = litros_mes (por tipo y
	// agregado) para todos los clientes activos. Devuelve filas afectadas.
	RestoreAllBalances() (int64, error)

	// SumWithdrawnInMonth litros retirados por el cliente en el mes de ref.
	SumWithdrawnInMonth(id int64, ref time.Time) (decimal.Decimal, error)
}
