package inventory

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio del libro de inventario atado a esa transacción.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
	) error) error
}
