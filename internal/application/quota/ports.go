package quota

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. El reset diario exige atomicidad
// total: barrido de saldos y actualización de fecha, o nada.
type TxRunner interface {
	RunQuota(ctx context.Context, fn func(
		cfgRepo repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error) error
}
