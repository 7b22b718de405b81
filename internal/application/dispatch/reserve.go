package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// ReserveInput entrada de un agendamiento. FechaAgendada en cero = mañana.
type ReserveInput struct {
	ClienteID     int64
	SubclienteID  *int64
	Fuel          entity.FuelType
	Litros        decimal.Decimal
	FechaAgendada time.Time
	UsuarioID     *int64
}

// ReserveResult snapshot resultante de un agendamiento confirmado.
type ReserveResult struct {
	ID              int64
	CodigoTicket    int
	FechaAgendada   time.Time
	NuevoSaldo      decimal.Decimal
	NuevoInventario decimal.Decimal
}

// Reserve crea un agendamiento. Cadena de validación ordenada, cada paso una
// guarda con su propio error:
//
//  1. sistema_config.retiros_bloqueados debe ser falso -> ErrServiceBlocked
//  2. inventario global suficiente                      -> ErrInsufficientInventory
//  3. cliente activo con saldo suficiente               -> ErrInsufficientBalance
//  4. ticket = MAX(codigo_ticket de la fecha) + 1
//  5. commit en una transacción: insertar agendamiento pendiente, descontar
//     saldo del cliente (y del subcliente si se nombra) y descontar el stock
//
// Todo corre dentro de la misma transacción, con la fila del cliente y la
// última fila de inventario bloqueadas: dos agendamientos concurrentes no
// pueden reclamar el mismo ticket ni sobregirar el saldo.
func (uc *UseCase) Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	if in.ClienteID <= 0 || !in.Litros.GreaterThan(decimal.Zero) || !in.Fuel.Valid() {
		return nil, domain.ErrInvalidInput
	}

	fecha := in.FechaAgendada
	if fecha.IsZero() {
		// Sin fecha explícita se agenda para mañana.
		fecha = tz.CivilDate(uc.now().In(uc.loc).AddDate(0, 0, 1), uc.loc)
	} else {
		fecha = tz.CivilDate(fecha, time.UTC)
	}

	var out ReserveResult
	err := uc.txRunner.RunDispatch(ctx, func(
		cfgRepo repository.ConfigRepository,
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
		invRepo repository.InventoryRepository,
		resRepo repository.ReservationRepository,
		_ repository.WithdrawalRepository,
	) error {
		cfg, err := cfgRepo.Get()
		if err != nil {
			return err
		}
		if cfg != nil && cfg.RetirosBloqueados {
			return domain.ErrServiceBlocked
		}

		ultimo, err := invRepo.Latest(in.Fuel)
		if err != nil {
			return err
		}
		if ultimo == nil || ultimo.LitersAfter.LessThan(in.Litros) {
			return domain.ErrInsufficientInventory
		}

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

		var subcliente *entity.Subclient
		if in.SubclienteID != nil {
			subcliente, err = subclientRepo.GetForUpdate(*in.SubclienteID)
			if err != nil {
				return err
			}
			if subcliente == nil || !subcliente.Activo || subcliente.ParentID != in.ClienteID {
				return domain.ErrNotFound
			}
		}

		ticket, err := resRepo.NextTicket(fecha)
		if err != nil {
			return err
		}

		id, err := resRepo.Create(&entity.Reservation{
			ClienteID:     in.ClienteID,
			SubclienteID:  in.SubclienteID,
			FuelType:      in.Fuel,
			Litros:        in.Litros,
			FechaAgendada: fecha,
			CodigoTicket:  ticket,
			Estado:        entity.ReservationPending,
			FechaCreacion: uc.now().In(uc.loc),
		})
		if err != nil {
			return err
		}

		if err := clientRepo.DecrementBalance(in.ClienteID, in.Fuel, in.Litros); err != nil {
			return err
		}
		if subcliente != nil {
			if err := subclientRepo.DecrementBalance(subcliente.ID, in.Fuel, in.Litros); err != nil {
				return err
			}
		}

		obs := fmt.Sprintf("Agendamiento #%d - Cliente ID: %d", ticket, in.ClienteID)
		nuevoInv, err := inventory.Debit(invRepo, in.Fuel, in.Litros, in.UsuarioID, obs)
		if err != nil {
			return err
		}

		out = ReserveResult{
			ID:              id,
			CodigoTicket:    ticket,
			FechaAgendada:   fecha,
			NuevoSaldo:      cliente.Available(in.Fuel).Sub(in.Litros),
			NuevoInventario: nuevoInv,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("cliente_id", in.ClienteID).
		Int("ticket", out.CodigoTicket).
		Str("fecha", out.FechaAgendada.Format("2006-01-02")).
		Str("litros", in.Litros.String()).
		Msg("agendamiento creado")
	return &out, nil
}
