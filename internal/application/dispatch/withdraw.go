package dispatch

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// WithdrawInput entrada de un retiro inmediato.
type WithdrawInput struct {
	ClienteID int64
	Fuel      entity.FuelType
	Litros    decimal.Decimal
	UsuarioID int64 // actor autenticado que registra el despacho
}

// WithdrawResult snapshot resultante de un retiro confirmado.
type WithdrawResult struct {
	ID         int64
	NuevoSaldo decimal.Decimal
}

// Withdraw registra un retiro inmediato: en una sola transacción descuenta el
// saldo del combustible (y el agregado legado), inserta el retiro y, si el
// combustible tiene libro de inventario, descuenta también el stock. La
// ausencia de libro no bloquea el retiro.
//
// El saldo del cliente sí se valida: un retiro que dejaría el saldo negativo
// falla con ErrInsufficientBalance. El descuento relativo guardado del store
// re-valida dentro de la transacción como última garantía.
func (uc *UseCase) Withdraw(ctx context.Context, in WithdrawInput) (*WithdrawResult, error) {
	if !in.Litros.GreaterThan(decimal.Zero) || !in.Fuel.Valid() || in.ClienteID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var out WithdrawResult
	err := uc.txRunner.RunDispatch(ctx, func(
		_ repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		_ repository.SubclientRepository,
		invRepo repository.InventoryRepository,
		_ repository.ReservationRepository,
		wdRepo repository.WithdrawalRepository,
	) error {
		cliente, err := clientRepo.GetForUpdate(in.ClienteID)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
		if cliente.Available(in.Fuel).LessThan(in.Litros) {
			return domain.ErrInsufficientBalance
		}

		ahora := uc.now().In(uc.loc)
		id, err := wdRepo.Create(&entity.Withdrawal{
			ClienteID: in.ClienteID,
			FuelType:  in.Fuel,
			Litros:    in.Litros,
			Fecha:     ahora,
			Hora:      ahora,
			UsuarioID: in.UsuarioID,
		})
		if err != nil {
			return err
		}

		if err := clientRepo.DecrementBalance(in.ClienteID, in.Fuel, in.Litros); err != nil {
			return err
		}

		// Mejor esfuerzo respecto a la ausencia de libro; con libro, el
		// descuento sí exige stock suficiente.
		if _, _, err := inventory.DebitIfTracked(invRepo, in.Fuel, in.Litros, &in.UsuarioID, "Retiro directo"); err != nil {
			return err
		}

		out = WithdrawResult{
			ID:         id,
			NuevoSaldo: cliente.Available(in.Fuel).Sub(in.Litros),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("cliente_id", in.ClienteID).
		Str("combustible", in.Fuel.String()).
		Str("litros", in.Litros.String()).
		Msg("retiro registrado")
	return &out, nil
}

// ListWithdrawals historial de retiros con filtros opcionales.
func (uc *UseCase) ListWithdrawals(f repository.WithdrawalFilter) ([]entity.Withdrawal, error) {
	return uc.wdRepo.List(f)
}
