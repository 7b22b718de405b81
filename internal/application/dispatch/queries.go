package dispatch

import (
	"time"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// ReservationsByDate lista los agendamientos de una fecha. Con fecha en cero
// se usa el día de hoy en la zona del servicio.
func (uc *UseCase) ReservationsByDate(fecha time.Time) ([]entity.Reservation, error) {
	if fecha.IsZero() {
		fecha = tz.CivilDate(uc.now(), uc.loc)
	} else {
		fecha = tz.CivilDate(fecha, time.UTC)
	}
	return uc.resRepo.ListByDate(fecha)
}

// ReservationsByClient lista el historial de agendamientos de un cliente.
func (uc *UseCase) ReservationsByClient(clienteID int64) ([]entity.Reservation, error) {
	if clienteID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.resRepo.ListByClient(clienteID)
}

// Reservation busca un agendamiento por su ID.
func (uc *UseCase) Reservation(id int64) (*entity.Reservation, error) {
	res, err := uc.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	return res, nil
}
