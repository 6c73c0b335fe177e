// Package pdf genera el comprobante de reserva de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de reserva  │  Referencia + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HUÉSPED: Nombre / Email / Teléfono                          │
//	│  ESTADÍA: Llegada | Salida | Habitaciones | Estado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  IMPORTES: Depósito / Saldo / TOTAL                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la reserva + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/domain/calendar"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ customers.ConfirmationPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa customers.ConfirmationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	brand string
}

// NewMarotoPDFGenerator construye el generador. brand aparece como autor y en la cabecera.
func NewMarotoPDFGenerator(brand string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{brand: nonEmpty(brand, "Booking Dashboard")}
}

// GenerateConfirmationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateConfirmationPDF(_ context.Context, c *entity.Customer) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("pdf: cliente nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Booking confirmation", true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(guestRow(c))
	m.AddRows(stayRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountsRow(c))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(c))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(c *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brand, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Booking confirmation", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REFERENCE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortRef(c.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Created: "+calendar.FormatLocal(c.DateCreated), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func guestRow(c *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("GUEST", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s",
				nonEmpty(c.Email, "-"),
				nonEmpty(c.PhoneNumber, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// stayRow: fechas, habitaciones y estado en cuatro columnas.
func stayRow(c *entity.Customer) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Size: 9, Top: 7}),
		)
	}
	return row.New(14).Add(
		cell("CHECK-IN", calendar.FormatLocal(c.DateFrom)),
		cell("CHECK-OUT", calendar.FormatLocal(c.DateTo)),
		cell("ROOMS", nonEmpty(c.Rooms, "-")),
		cell("STATUS", strings.ToUpper(string(c.Status))),
	)
}

// amountsRow: bloque de importes alineado a la derecha.
func amountsRow(c *entity.Customer) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Deposit:"),
			label("Balance due:"),
			label("TOTAL:"),
		),
		col.New(3).Add(
			value(money.Format(c.AmountDeposit)),
			value(money.Format(balance(c))),
			grand(money.Format(c.AmountTotal)),
		),
		col.New(3),
	)
}

func footerRow(c *entity.Customer) core.Row {
	return row.New(50).Add(
		col.New(4).Add(code.NewQr(c.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Present this code at check-in.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Booking "+c.ID, props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// balance saldo pendiente; nunca negativo aunque el depósito supere el total.
func balance(c *entity.Customer) int64 {
	if d := c.AmountTotal - c.AmountDeposit; d > 0 {
		return d
	}
	return 0
}

func shortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
