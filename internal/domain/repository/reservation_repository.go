package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// ReservationRepository puerto de persistencia para agendamientos.
type ReservationRepository interface {
	GetByID(id int64) (*entity.Reservation, error)
	// Create inserta el agendamiento. Una violación del índice único
	// (fecha_agendada, codigo_ticket) se reporta como domain.ErrConflict.
	Create(r *entity.Reservation) (int64, error)
	// NextTicket siguiente número de ticket para la fecha: MAX + 1, inicia
	// en 1. Debe llamarse dentro de la misma transacción que Create; toma un
	// advisory lock por fecha para serializar asignaciones concurrentes.
	NextTicket(fecha time.Time) (int, error)
	// MarkDelivered transición pendiente -> entregado. Devuelve true si la
	// fila cambió de estado (false si ya estaba entregado).
	MarkDelivered(id int64) (bool, error)
	ListByDate(fecha time.Time) ([]entity.Reservation, error)
	ListByClient(clienteID int64) ([]entity.Reservation, error)
	// SumByDate litros agendados y litros ya entregados para la fecha.
	SumByDate(fecha time.Time, fuel entity.FuelType) (agendados, entregados decimal.Decimal, err error)
}
