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

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo agendamientos sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de persistencia de
// agendamientos. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationJoin = `
	SELECT a.id, a.cliente_id, a.subcliente_id, a.tipo_combustible, a.litros,
	       a.fecha_agendada, a.codigo_ticket, a.estado, a.fecha_creacion,
	       c.nombre, c.cedula, COALESCE(s.nombre, '')
	FROM agendamientos a
	JOIN clientes c ON c.id = a.cliente_id
	LEFT JOIN subclientes s ON s.id = a.subcliente_id`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.ClienteID, &res.SubclienteID, &res.FuelType, &res.Litros,
		&res.FechaAgendada, &res.CodigoTicket, &res.Estado, &res.FechaCreacion,
		&res.ClienteNombre, &res.ClienteCedula, &res.SubclienteNombre,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan agendamiento: %w", err)
	}
	return &res, nil
}

// GetByID obtiene un agendamiento con los datos del cliente.
func (r *ReservationRepo) GetByID(id int64) (*entity.Reservation, error) {
	query := reservationJoin + ` WHERE a.id = $1`
	return scanReservation(r.q.QueryRow(context.Background(), query, id))
}

// Create persiste un agendamiento. Una colisión de (fecha_agendada,
// codigo_ticket) contra el índice único se reporta como domain.ErrConflict
// para que el caller reintente con un ticket fresco.
func (r *ReservationRepo) Create(res *entity.Reservation) (int64, error) {
	query := `
		INSERT INTO agendamientos (cliente_id, subcliente_id, tipo_combustible, litros,
			fecha_agendada, codigo_ticket, estado, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		res.ClienteID, res.SubclienteID, res.FuelType, res.Litros,
		res.FechaAgendada, res.CodigoTicket, res.Estado, res.FechaCreacion,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("insert agendamiento: %w", err)
	}
	return id, nil
}

// NextTicket siguiente número de ticket de la fecha (MAX + 1, inicia en 1).
// El advisory lock por fecha serializa transacciones concurrentes que piden
// ticket para el mismo día; el índice único es la red de seguridad final.
func (r *ReservationRepo) NextTicket(fecha time.Time) (int, error) {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('agendamientos_ticket'), $1::date - date '2000-01-01')`,
		fecha,
	); err != nil {
		return 0, fmt.Errorf("lock ticket: %w", err)
	}

	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(codigo_ticket), 0) FROM agendamientos WHERE fecha_agendada = $1`,
		fecha,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next ticket: %w", err)
	}
	return max + 1, nil
}

// MarkDelivered transiciona pendiente -> entregado. Devuelve false si el
// agendamiento ya no estaba pendiente.
func (r *ReservationRepo) MarkDelivered(id int64) (bool, error) {
	query := `UPDATE agendamientos SET estado = $1 WHERE id = $2 AND estado = $3`
	tag, err := r.q.Exec(context.Background(), query,
		entity.ReservationDelivered, id, entity.ReservationPending)
	if err != nil {
		return false, fmt.Errorf("update agendamiento: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByDate agendamientos de una fecha, en orden de ticket.
func (r *ReservationRepo) ListByDate(fecha time.Time) ([]entity.Reservation, error) {
	query := reservationJoin + ` WHERE a.fecha_agendada = $1 ORDER BY a.codigo_ticket`
	return r.list(query, fecha)
}

// ListByClient historial de agendamientos de un cliente, más reciente
// primero.
func (r *ReservationRepo) ListByClient(clienteID int64) ([]entity.Reservation, error) {
	query := reservationJoin + ` WHERE a.cliente_id = $1 ORDER BY a.id DESC`
	return r.list(query, clienteID)
}

func (r *ReservationRepo) list(query string, args ...any) ([]entity.Reservation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agendamientos: %w", err)
	}
	defer rows.Close()

	var out []entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// SumByDate litros de un combustible agendados y entregados en una fecha.
func (r *ReservationRepo) SumByDate(fecha time.Time, fuel entity.FuelType) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(litros), 0),
		       COALESCE(SUM(litros) FILTER (WHERE estado = $3), 0)
		FROM agendamientos
		WHERE fecha_agendada = $1 AND tipo_combustible = $2`
	var agendados, entregados decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, fecha, fuel, entity.ReservationDelivered).
		Scan(&agendados, &entregados)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum agendamientos: %w", err)
	}
	return agendados, entregados, nil
}
