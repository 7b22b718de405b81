package dispatch

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// MarkDelivered marca un agendamiento pendiente como entregado. El saldo y el
// inventario ya se descontaron al crear el agendamiento, así que la entrega
// solo cambia el estado. Si el agendamiento no existe devuelve ErrNotFound; si
// ya estaba entregado devuelve ErrConflict.
func (uc *UseCase) MarkDelivered(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunDispatch(ctx, func(
		_ repository.ConfigRepository,
		_ repository.ClientRepository,
		_ repository.SubclientRepository,
		_ repository.InventoryRepository,
		resRepo repository.ReservationRepository,
		_ repository.WithdrawalRepository,
	) error {
		res, err := resRepo.GetByID(id)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		changed, err := resRepo.MarkDelivered(id)
		if err != nil {
			return err
		}
		if !changed {
			return domain.ErrConflict
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("agendamiento_id", id).Msg("agendamiento entregado")
	return nil
}
