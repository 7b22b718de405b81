// Package pdf genera el comprobante imprimible de un agendamiento.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  ESTACIÓN + TICKET N°                     │
//	│  ─────────────────────────────────────    │
//	│  CLIENTE: nombre + cédula (+ subcliente)  │
//	│  DESPACHO: combustible | litros | fecha   │
//	│  ─────────────────────────────────────    │
//	│  QR de verificación + leyenda             │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ dispatch.TicketPDFGenerator = (*MarotoTicketGenerator)(nil)

// MarotoTicketGenerator implementa dispatch.TicketPDFGenerator usando
// Maroto v2.
type MarotoTicketGenerator struct {
	estacion string
}

// NewMarotoTicketGenerator construye el generador con el nombre de la
// estación que encabeza el ticket.
func NewMarotoTicketGenerator(estacion string) *MarotoTicketGenerator {
	return &MarotoTicketGenerator{estacion: estacion}
}

// GenerateTicketPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoTicketGenerator) GenerateTicketPDF(
	_ context.Context,
	res *entity.Reservation,
	cliente *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(fmt.Sprintf("Ticket %d", res.CodigoTicket), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.estacion, res))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(res, cliente))
	m.AddRows(despachoRow(res))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(qrRow(res))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: estación (izq) y número de ticket + fecha agendada (der).
func headerRow(estacion string, res *entity.Reservation) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(estacion, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de agendamiento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("TICKET N° %d", res.CodigoTicket), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+res.FechaAgendada.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// clienteRow: titular del cupo y, si aplica, el subcliente que retira.
func clienteRow(res *entity.Reservation, cliente *entity.Client) core.Row {
	alto := 16.0
	cols := []core.Component{
		text.New("CLIENTE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(cliente.Nombre, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		text.New("Cédula/RIF: "+cliente.Cedula, props.Text{Size: 9, Top: 12, Color: colorGray}),
	}
	if res.SubclienteNombre != "" {
		alto = 21
		cols = append(cols, text.New("Retira: "+res.SubclienteNombre, props.Text{
			Size: 9, Top: 17, Color: colorGray,
		}))
	}
	return row.New(alto).Add(col.New(12).Add(cols...))
}

// despachoRow: combustible, litros y estado.
func despachoRow(res *entity.Reservation) core.Row {
	celda := func(titulo, valor string) core.Col {
		return col.New(4).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Center,
			}),
			text.New(valor, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 7, Align: align.Center,
			}),
		)
	}
	return row.New(16).Add(
		celda("COMBUSTIBLE", res.FuelType.String()),
		celda("LITROS", res.Litros.StringFixed(2)),
		celda("ESTADO", res.Estado),
	)
}

// qrRow: QR de verificación con la identidad del agendamiento.
func qrRow(res *entity.Reservation) core.Row {
	payload := fmt.Sprintf("agendamiento:%d|ticket:%d|fecha:%s",
		res.ID, res.CodigoTicket, res.FechaAgendada.Format("2006-01-02"))
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(payload, props.Rect{Center: true, Percent: 90})),
		col.New(8).Add(
			text.New("Presente este comprobante al momento del despacho.", props.Text{
				Size: 9, Top: 12, Color: colorGray,
			}),
			text.New("Válido únicamente para la fecha agendada.", props.Text{
				Size: 9, Top: 18, Color: colorGray,
			}),
		),
	)
}
