package dispatch

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Cada operación de negocio del motor
// (retiro, agendamiento) corre completa dentro de una sola transacción:
// saldos, inventario y ticket se confirman juntos o no se confirma nada.
type TxRunner interface {
	RunDispatch(ctx context.Context, fn func(
		cfgRepo repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
		invRepo repository.InventoryRepository,
		resRepo repository.ReservationRepository,
		wdRepo repository.WithdrawalRepository,
	) error) error
}

// TicketPDFGenerator genera la representación imprimible del ticket de un
// agendamiento.
type TicketPDFGenerator interface {
	GenerateTicketPDF(ctx context.Context, res *entity.Reservation, cliente *entity.Client) ([]byte, error)
}
