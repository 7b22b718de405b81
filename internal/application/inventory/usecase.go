package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// UseCase gestor del libro de inventario por combustible.
//
// El libro es append-only: el stock actual es una función pura de la fila más
// reciente, lo que mantiene un historial auditable de cada cambio y hace que
// la lectura tras un crash sea siempre consistente con la última escritura
// confirmada. Solo este componente calcula totales corridos y agrega filas.
type UseCase struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository
}

// NewUseCase construye el gestor. invRepo se usa para lecturas fuera de
// transacción; las mutaciones pasan por txRunner.
func NewUseCase(txRunner TxRunner, invRepo repository.InventoryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, invRepo: invRepo}
}

// CurrentStock stock actual del combustible: litros disponibles de la fila
// más reciente, o cero si el libro no tiene filas para ese tipo.
func (uc *UseCase) CurrentStock(fuel entity.FuelType) (decimal.Decimal, error) {
	last, err := uc.invRepo.Latest(fuel)
	if err != nil {
		return decimal.Zero, err
	}
	if last == nil {
		return decimal.Zero, nil
	}
	return last.LitersAfter, nil
}

// CurrentState stock actual de todos los combustibles.
func (uc *UseCase) CurrentState() (map[entity.FuelType]decimal.Decimal, error) {
	out := make(map[entity.FuelType]decimal.Decimal, len(entity.FuelTypes))
	for _, f := range entity.FuelTypes {
		stock, err := uc.CurrentStock(f)
		if err != nil {
			return nil, err
		}
		out[f] = stock
	}
	return out, nil
}

// History historial completo del libro, más reciente primero.
func (uc *UseCase) History() ([]entity.InventoryEntry, error) {
	return uc.invRepo.History()
}

// Replenish reposición administrativa: agrega una fila con litros positivos
// y el nuevo total corrido. Devuelve el nuevo stock.
func (uc *UseCase) Replenish(ctx context.Context, fuel entity.FuelType, litros decimal.Decimal, usuarioID int64, obs string) (decimal.Decimal, error) {
	if !fuel.Valid() || !litros.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var nuevo decimal.Decimal
	err := uc.txRunner.RunInventory(ctx, func(invRepo repository.InventoryRepository) error {
		last, err := invRepo.LatestForUpdate(fuel)
		if err != nil {
			return err
		}
		actual := decimal.Zero
		if last != nil {
			actual = last.LitersAfter
		}
		nuevo = actual.Add(litros)
		_, err = invRepo.Append(&entity.InventoryEntry{
			FuelType:      fuel,
			LitersIn:      litros,
			LitersAfter:   nuevo,
			UsuarioID:     &usuarioID,
			Observaciones: obs,
		})
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// ResetToZero acción administrativa explícita: deja el stock de cada
// combustible en cero agregando una fila de ajuste (nunca modifica filas
// previas). Los combustibles sin libro se omiten. El scheduler diario jamás
// llama esta operación.
func (uc *UseCase) ResetToZero(ctx context.Context, usuarioID int64) error {
	return uc.txRunner.RunInventory(ctx, func(invRepo repository.InventoryRepository) error {
		for _, fuel := range entity.FuelTypes {
			last, err := invRepo.LatestForUpdate(fuel)
			if err != nil {
				return err
			}
			if last == nil || last.LitersAfter.IsZero() {
				continue
			}
			_, err = invRepo.Append(&entity.InventoryEntry{
				FuelType:      fuel,
				LitersIn:      last.LitersAfter.Neg(),
				LitersAfter:   decimal.Zero,
				UsuarioID:     &usuarioID,
				Observaciones: "Reset administrativo de inventario",
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Debit descuenta litros del libro dentro de la transacción del caller:
// agrega una fila con litros negativos y el nuevo total corrido. Falla con
// domain.ErrInsufficientInventory si el stock actual (cero si no hay libro)
// no alcanza. Devuelve el nuevo stock.
func Debit(invRepo repository.InventoryRepository, fuel entity.FuelType, litros decimal.Decimal, usuarioID *int64, obs string) (decimal.Decimal, error) {
	last, err := invRepo.LatestForUpdate(fuel)
	if err != nil {
		return decimal.Zero, err
	}
	actual := decimal.Zero
	if last != nil {
		actual = last.LitersAfter
	}
	if actual.LessThan(litros) {
		return decimal.Zero, fmt.Errorf("%w: %s disponible %s, solicitado %s",
			domain.ErrInsufficientInventory, fuel, actual, litros)
	}
	nuevo := actual.Sub(litros)
	_, err = invRepo.Append(&entity.InventoryEntry{
		FuelType:      fuel,
		LitersIn:      litros.Neg(),
		LitersAfter:   nuevo,
		UsuarioID:     usuarioID,
		Observaciones: obs,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

// DebitIfTracked como Debit, pero tolera la ausencia de libro: si el
// combustible no tiene filas devuelve tracked=false sin efecto alguno.
// El rastreo de inventario llegó después que los saldos; los retiros no se
// bloquean por no tener libro.
func DebitIfTracked(invRepo repository.InventoryRepository, fuel entity.FuelType, litros decimal.Decimal, usuarioID *int64, obs string) (decimal.Decimal, bool, error) {
	last, err := invRepo.LatestForUpdate(fuel)
	if err != nil {
		return decimal.Zero, false, err
	}
	if last == nil {
		return decimal.Zero, false, nil
	}
	nuevo, err := Debit(invRepo, fuel, litros, usuarioID, obs)
	if err != nil {
		return decimal.Zero, true, err
	}
	return nuevo, true, nil
}
