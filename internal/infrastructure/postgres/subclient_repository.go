package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.SubclientRepository = (*SubclientRepo)(nil)

const subclientColumns = `id, cliente_padre_id, nombre, cedula, placa,
	litros_mes_gasolina, litros_mes_gasoil,
	litros_disponibles_gasolina, litros_disponibles_gasoil,
	activo, created_at`

// SubclientRepo implementación del puerto SubclientRepository sobre
// PostgreSQL (usable con pool o tx).
type SubclientRepo struct {
	q Querier
}

// NewSubclientRepository construye el adaptador de persistencia para
// subclientes. Pasar pool o tx (Querier).
func NewSubclientRepository(q Querier) *SubclientRepo {
	return &SubclientRepo{q: q}
}

func scanSubclient(row pgx.Row) (*entity.Subclient, error) {
	var sc entity.Subclient
	err := row.Scan(
		&sc.ID, &sc.ParentID, &sc.Nombre, &sc.Cedula, &sc.Placa,
		&sc.MonthlyGasoline, &sc.MonthlyDiesel,
		&sc.AvailableGasoline, &sc.AvailableDiesel,
		&sc.Activo, &sc.FechaRegistro,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subcliente: %w", err)
	}
	return &sc, nil
}

// GetByID obtiene un subcliente por ID.
func (r *SubclientRepo) GetByID(id int64) (*entity.Subclient, error) {
	query := `SELECT ` + subclientColumns + ` FROM subclientes WHERE id = $1`
	return scanSubclient(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea y obtiene la fila de un subcliente. Usar dentro de
// una transacción.
func (r *SubclientRepo) GetForUpdate(id int64) (*entity.Subclient, error) {
	query := `SELECT ` + subclientColumns + ` FROM subclientes WHERE id = $1 FOR UPDATE`
	return scanSubclient(r.q.QueryRow(context.Background(), query, id))
}

// ListByParent lista los subclientes activos de un padre.
func (r *SubclientRepo) ListByParent(parentID int64) ([]entity.Subclient, error) {
	query := `SELECT ` + subclientColumns + ` FROM subclientes
		WHERE cliente_padre_id = $1 AND activo ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list subclientes: %w", err)
	}
	defer rows.Close()

	var out []entity.Subclient
	for rows.Next() {
		sc, err := scanSubclient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sc)
	}
	return out, rows.Err()
}

// Create persiste un subcliente nuevo.
func (r *SubclientRepo) Create(sc *entity.Subclient) (int64, error) {
	query := `
		INSERT INTO subclientes (cliente_padre_id, nombre, cedula, placa,
			litros_mes_gasolina, litros_mes_gasoil,
			litros_disponibles_gasolina, litros_disponibles_gasoil, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		sc.ParentID, sc.Nombre, sc.Cedula, sc.Placa,
		sc.MonthlyGasoline, sc.MonthlyDiesel,
		sc.AvailableGasoline, sc.AvailableDiesel, sc.Activo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert subcliente: %w", err)
	}
	return id, nil
}

// SumMonthlyByParent suma de cupos mensuales (gasolina, gasoil) de los
// subclientes activos de un padre.
func (r *SubclientRepo) SumMonthlyByParent(parentID int64) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(litros_mes_gasolina), 0), COALESCE(SUM(litros_mes_gasoil), 0)
		FROM subclientes WHERE cliente_padre_id = $1 AND activo`
	var gasolina, gasoil decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, parentID).Scan(&gasolina, &gasoil); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum cupos subclientes: %w", err)
	}
	return gasolina, gasoil, nil
}

// DecrementBalance descuenta litros del saldo del subcliente con la misma
// guarda relativa que el descuento del padre.
func (r *SubclientRepo) DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error {
	var query string
	switch fuel {
	case entity.FuelDiesel:
		query = `
			UPDATE subclientes
			SET litros_disponibles_gasoil = litros_disponibles_gasoil - $1
			WHERE id = $2 AND activo AND litros_disponibles_gasoil >= $1`
	default:
		query = `
			UPDATE subclientes
			SET litros_disponibles_gasolina = litros_disponibles_gasolina - $1
			WHERE id = $2 AND activo AND litros_disponibles_gasolina >= $1`
	}
	tag, err := r.q.Exec(context.Background(), query, litros, id)
	if err != nil {
		return fmt.Errorf("decrement saldo subcliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existe, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if existe == nil || !existe.Activo {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

// RestoreAllBalances repone litros_disponibles = litros_mes por tipo para
// todos los subclientes activos.
func (r *SubclientRepo) RestoreAllBalances() (int64, error) {
	query := `
		UPDATE subclientes
		SET litros_disponibles_gasolina = litros_mes_gasolina,
		    litros_disponibles_gasoil = litros_mes_gasoil
		WHERE activo`
	tag, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return 0, fmt.Errorf("restore saldos subclientes: %w", err)
	}
	return tag.RowsAffected(), nil
}
