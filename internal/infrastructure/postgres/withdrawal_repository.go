package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo retiros sobre PostgreSQL (usable con pool o tx).
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador de persistencia de retiros.
// Pasar pool o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste un retiro.
func (r *WithdrawalRepo) Create(w *entity.Withdrawal) (int64, error) {
	query := `
		INSERT INTO retiros (cliente_id, fecha, hora, litros, usuario_id, tipo_combustible)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		w.ClienteID, w.Fecha, w.Hora, w.Litros, w.UsuarioID, w.FuelType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert retiro: %w", err)
	}
	return id, nil
}

// List historial de retiros con los datos del cliente, más reciente primero.
// Los filtros son opcionales y se componen.
func (r *WithdrawalRepo) List(f repository.WithdrawalFilter) ([]entity.Withdrawal, error) {
	query := `
		SELECT r.id, r.cliente_id, r.tipo_combustible, r.litros, r.fecha, r.hora,
		       r.usuario_id, c.nombre, c.cedula
		FROM retiros r
		JOIN clientes c ON c.id = r.cliente_id
		WHERE 1=1`
	args := []any{}
	if f.ClienteID != nil {
		args = append(args, *f.ClienteID)
		query += fmt.Sprintf(" AND r.cliente_id = $%d", len(args))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		query += fmt.Sprintf(" AND r.fecha >= $%d", len(args))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		query += fmt.Sprintf(" AND r.fecha <= $%d", len(args))
	}
	query += " ORDER BY r.id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list retiros: %w", err)
	}
	defer rows.Close()

	var out []entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		err := rows.Scan(
			&w.ID, &w.ClienteID, &w.FuelType, &w.Litros, &w.Fecha, &w.Hora,
			&w.UsuarioID, &w.ClienteNombre, &w.ClienteCedula,
		)
		if err != nil {
			return nil, fmt.Errorf("scan retiro: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
