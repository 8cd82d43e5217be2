// Package pdf genera el documento de una orden de compra para enviar al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor              │  N° Orden + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + CUIT + contacto                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / TOTAL                                  │
//	│  FOOTER: QR de referencia + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

var _ purchasing.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var money = message.NewPrinter(language.Spanish)

var statusLabel = map[entity.OrderStatus]string{
	entity.OrderPending:   "Pendiente",
	entity.OrderConfirmed: "Enviada",
	entity.OrderFinalized: "Finalizada",
	entity.OrderCancelled: "Cancelada",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa purchasing.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, doc purchasing.OrderDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden de compra %d", doc.Order.ID), true).
		WithAuthor(nonEmpty(doc.IssuerName, "Compras"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(doc.Supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Order.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Order))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y N° de orden + fecha + estado (der).
func headerRow(doc purchasing.OrderDocument) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.IssuerName, "Compras"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Departamento de compras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(orderNumber(doc.Order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+doc.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Estado: "+nonEmpty(statusLabel[doc.Order.Status], doc.Order.Status.String()), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor destinatario.
func supplierRow(s entity.Supplier) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(s.Name, fmt.Sprintf("Proveedor %d", s.ID)), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CUIT: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(s.TaxID, "—"),
				nonEmpty(s.Email, "—"),
				nonEmpty(s.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de la orden.
func tableDetailRows(lines []entity.PurchaseOrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				nonEmpty(l.ArticleName, fmt.Sprintf("Artículo %d", l.ArticleID)),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades y total alineados a la derecha.
func totalsRow(o entity.PurchaseOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}

	return row.New(16).Add(
		col.New(3),
		col.New(3).Add(
			label("Unidades:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", o.TotalQuantity), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grandValue(formatMoney(o.TotalAmount)),
		),
		col.New(3),
	)
}

// footerRow: QR con la referencia de la orden y leyenda.
func footerRow(o entity.PurchaseOrder) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(orderNumber(o.ID), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Indique el número de orden en el remito y la factura.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Los precios corresponden al vínculo artículo-proveedor vigente al emitir la orden.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func orderNumber(id int64) string {
	return fmt.Sprintf("OC-%06d", id)
}

// formatMoney importe con separadores según la convención en español.
// Ej: 1234567.5 → "$1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return money.Sprintf("$%.2f", f)
}
