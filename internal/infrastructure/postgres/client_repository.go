package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, nombre, direccion, telefono, cedula, rif, placa, categoria, huella,
	litros_mes_gasolina, litros_mes_gasoil, litros_mes,
	litros_disponibles_gasolina, litros_disponibles_gasoil, litros_disponibles,
	activo, fecha_registro`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL
// (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
// Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Direccion, &c.Telefono, &c.Cedula, &c.RIF, &c.Placa,
		&c.Categoria, &c.Huella,
		&c.MonthlyGasoline, &c.MonthlyDiesel, &c.MonthlyTotal,
		&c.AvailableGasoline, &c.AvailableDiesel, &c.AvailableTotal,
		&c.Activo, &c.FechaRegistro,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan cliente: %w", err)
	}
	return &c, nil
}

// GetByID obtiene un cliente por ID, activo o no.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE id = $1`
	return scanClient(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByID obtiene un cliente activo por ID; nil si no existe o está
// inactivo.
func (r *ClientRepo) GetActiveByID(id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE id = $1 AND activo`
	return scanClient(r.q.QueryRow(context.Background(), query, id))
}

// GetByCedula obtiene un cliente activo por cédula.
func (r *ClientRepo) GetByCedula(cedula string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE cedula = $1 AND activo`
	return scanClient(r.q.QueryRow(context.Background(), query, cedula))
}

// GetByTelefono obtiene un cliente activo por teléfono.
func (r *ClientRepo) GetByTelefono(telefono string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE telefono = $1 AND activo`
	return scanClient(r.q.QueryRow(context.Background(), query, telefono))
}

// GetForUpdate bloquea y obtiene la fila de un cliente activo. Usar dentro
// de una transacción.
func (r *ClientRepo) GetForUpdate(id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE id = $1 AND activo FOR UPDATE`
	return scanClient(r.q.QueryRow(context.Background(), query, id))
}

// List lista clientes activos, opcionalmente filtrados por nombre o
// dirección.
func (r *ClientRepo) List(busqueda string) ([]entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE activo`
	args := []any{}
	if busqueda != "" {
		query += ` AND (nombre ILIKE $1 OR direccion ILIKE $1 OR cedula ILIKE $1)`
		args = append(args, "%"+busqueda+"%")
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(c *entity.Client) (int64, error) {
	query := `
		INSERT INTO clientes (nombre, direccion, telefono, cedula, rif, placa, categoria, huella,
			litros_mes_gasolina, litros_mes_gasoil, litros_mes,
			litros_disponibles_gasolina, litros_disponibles_gasoil, litros_disponibles,
			activo, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		c.Nombre, c.Direccion, c.Telefono, c.Cedula, c.RIF, c.Placa, c.Categoria, c.Huella,
		c.MonthlyGasoline, c.MonthlyDiesel, c.MonthlyTotal,
		c.AvailableGasoline, c.AvailableDiesel, c.AvailableTotal,
		c.Activo, c.FechaRegistro,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

// Update reescribe los datos y cupos del cliente. No toca los saldos.
func (r *ClientRepo) Update(c *entity.Client) error {
	query := `
		UPDATE clientes SET
			nombre = $1, direccion = $2, telefono = $3, cedula = $4, rif = $5, placa = $6,
			categoria = $7, huella = $8,
			litros_mes_gasolina = $9, litros_mes_gasoil = $10, litros_mes = $11,
			activo = $12
		WHERE id = $13`
	tag, err := r.q.Exec(context.Background(), query,
		c.Nombre, c.Direccion, c.Telefono, c.Cedula, c.RIF, c.Placa,
		c.Categoria, c.Huella,
		c.MonthlyGasoline, c.MonthlyDiesel, c.MonthlyTotal,
		c.Activo, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementBalance descuenta litros del saldo del combustible dado y del
// agregado legado en una sola sentencia relativa. La cláusula WHERE re-valida
// el saldo dentro de la transacción: cero filas afectadas con el cliente
// presente significa saldo insuficiente.
func (r *ClientRepo) DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error {
	var query string
	switch fuel {
	case entity.FuelDiesel:
		query = `
			UPDATE clientes
			SET litros_disponibles_gasoil = litros_disponibles_gasoil - $1,
			    litros_disponibles = litros_disponibles - $1
			WHERE id = $2 AND activo AND litros_disponibles_gasoil >= $1`
	default:
		query = `
			UPDATE clientes
			SET litros_disponibles_gasolina = litros_disponibles_gasolina - $1,
			    litros_disponibles = litros_disponibles - $1
			WHERE id = $2 AND activo AND litros_disponibles_gasolina >= $1`
	}
	tag, err := r.q.Exec(context.Background(), query, litros, id)
	if err != nil {
		return fmt.Errorf("decrement saldo cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existe, err := r.GetActiveByID(id)
		if err != nil {
			return err
		}
		if existe == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

// RestoreAllBalances repone litros_disponibles = litros_mes, por tipo y
// agregado, para todos los clientes activos.
func (r *ClientRepo) RestoreAllBalances() (int64, error) {
	query := `
		UPDATE clientes
		SET litros_disponibles_gasolina = litros_mes_gasolina,
		    litros_disponibles_gasoil = litros_mes_gasoil,
		    litros_disponibles = litros_mes
		WHERE activo`
	tag, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return 0, fmt.Errorf("restore saldos clientes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumWithdrawnInMonth litros retirados por el cliente en el mes de ref.
func (r *ClientRepo) SumWithdrawnInMonth(id int64, ref time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(litros), 0)
		FROM retiros
		WHERE cliente_id = $1
		  AND date_trunc('month', fecha) = date_trunc('month', $2::date)`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, id, ref).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum retiros del mes: %w", err)
	}
	return total, nil
}
