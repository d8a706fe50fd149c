// Package pdf genera el reporte PDF del stock agregado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restocker + usuario  │  Pestaña + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / por vencer / stock bajo                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Total | Lotes | Próx. venc. | Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

var _ ports.ReportGenerator = (*StockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}

	toneColors = map[inventory.Tone]*props.Color{
		inventory.ToneRed:    {Red: 239, Green: 68, Blue: 68},
		inventory.ToneYellow: {Red: 202, Green: 138, Blue: 4},
		inventory.ToneOrange: {Red: 249, Green: 115, Blue: 22},
		inventory.ToneGreen:  {Red: 22, Green: 163, Blue: 74},
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type StockReportGenerator struct {
	printer *message.Printer
}

// NewStockReportGenerator construye el generador (números con separador de miles en inglés).
func NewStockReportGenerator() *StockReportGenerator {
	return &StockReportGenerator{printer: message.NewPrinter(language.English)}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, in ports.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Restocker - Stock Report", true).
		WithAuthor(in.Owner, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(in.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No products in this view.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range g.tableRows(in.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Status precedence: Expired > Expiring Soon > Low Stock > In Stock.", props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StockReportGenerator) headerRow(in ports.StockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Restocker", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(in.Owner, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("STOCK REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("View: "+in.Filter, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Generated: "+in.GeneratedAt.Format("Jan 2, 2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *StockReportGenerator) summaryRow(in ports.StockReport) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(g.printer.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		cell("Products listed", len(in.Rows)),
		cell("Expired / expiring", in.Expiring),
		cell("Low stock", in.LowStock),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Product", 4, align.Left),
		h("Total", 2, align.Right),
		h("Batches", 1, align.Center),
		h("Earliest expiry", 3, align.Center),
		h("Status", 2, align.Center),
	)
}

// tableRows una fila por producto.
func (g *StockReportGenerator) tableRows(rows []ports.StockReportRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		expiry := "-"
		if r.EarliestExpiry != nil {
			expiry = r.EarliestExpiry.Format("Jan 2, 2006")
		}
		total := g.printer.Sprintf("%d", r.TotalQuantity)
		if r.Measure != "" {
			total += " " + r.Measure
		}
		status := inventory.Status(r.Status)
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(r.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(total, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprint(r.Batches), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(expiry, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(r.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
				Color: toneColors[inventory.ToneOf(status)],
			})),
		))
	}
	return out
}
