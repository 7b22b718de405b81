package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo libro de inventario append-only sobre PostgreSQL (usable con
// pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia del libro de
// inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventoryEntry(row pgx.Row) (*entity.InventoryEntry, error) {
	var e entity.InventoryEntry
	err := row.Scan(
		&e.ID, &e.FuelType, &e.LitersIn, &e.LitersAfter,
		&e.Fecha, &e.UsuarioID, &e.Observaciones,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventario: %w", err)
	}
	return &e, nil
}

// Latest fila más reciente del combustible; nil si el libro no tiene filas
// para ese tipo.
func (r *InventoryRepo) Latest(fuel entity.FuelType) (*entity.InventoryEntry, error) {
	query := `
		SELECT id, tipo_combustible, litros_ingresados, litros_disponibles,
		       fecha_ingreso, usuario_id, observaciones
		FROM inventario WHERE tipo_combustible = $1
		ORDER BY id DESC LIMIT 1`
	return scanInventoryEntry(r.q.QueryRow(context.Background(), query, fuel))
}

// LatestForUpdate como Latest pero serializando a los escritores del mismo
// combustible. El advisory lock por tipo va primero: un FOR UPDATE solo
// re-evalúa la fila bloqueada, no la consulta, así que dos transacciones
// concurrentes podrían leer la misma fila "más reciente" aunque una de ellas
// ya tenga una fila nueva por confirmar, y calcular totales corridos sobre
// un stock viejo. Con el lock, la segunda transacción recién consulta cuando
// la primera confirmó su Append.
func (r *InventoryRepo) LatestForUpdate(fuel entity.FuelType) (*entity.InventoryEntry, error) {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('inventario'), hashtext($1::text))`,
		fuel,
	); err != nil {
		return nil, fmt.Errorf("lock inventario: %w", err)
	}
	query := `
		SELECT id, tipo_combustible, litros_ingresados, litros_disponibles,
		       fecha_ingreso, usuario_id, observaciones
		FROM inventario WHERE tipo_combustible = $1
		ORDER BY id DESC LIMIT 1`
	return scanInventoryEntry(r.q.QueryRow(ctx, query, fuel))
}

// Append inserta una fila nueva del libro. Nunca actualiza filas previas.
func (r *InventoryRepo) Append(e *entity.InventoryEntry) (int64, error) {
	query := `
		INSERT INTO inventario (tipo_combustible, litros_ingresados, litros_disponibles, usuario_id, observaciones)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		e.FuelType, e.LitersIn, e.LitersAfter, e.UsuarioID, e.Observaciones,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert inventario: %w", err)
	}
	return id, nil
}

// History historial completo del libro con el nombre del usuario, más
// reciente primero.
func (r *InventoryRepo) History() ([]entity.InventoryEntry, error) {
	query := `
		SELECT i.id, i.tipo_combustible, i.litros_ingresados, i.litros_disponibles,
		       i.fecha_ingreso, i.usuario_id, i.observaciones, COALESCE(u.nombre, '')
		FROM inventario i
		LEFT JOIN usuarios u ON u.id = i.usuario_id
		ORDER BY i.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()

	var out []entity.InventoryEntry
	for rows.Next() {
		var e entity.InventoryEntry
		err := rows.Scan(
			&e.ID, &e.FuelType, &e.LitersIn, &e.LitersAfter,
			&e.Fecha, &e.UsuarioID, &e.Observaciones, &e.UsuarioNombre,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
