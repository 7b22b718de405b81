package dispatch

import (
	"context"

	"github.com/jhoicas/combustible-api/internal/domain"
)

// TicketPDF genera el comprobante PDF de un agendamiento.
func (uc *UseCase) TicketPDF(ctx context.Context, id int64, gen TicketPDFGenerator) ([]byte, error) {
	res, err := uc.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	cliente, err := uc.clientRepo.GetByID(res.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return gen.GenerateTicketPDF(ctx, res, cliente)
}
