// Package pdf exporta reportes a PDF usando Maroto v2.
//
// Layout de la página A4 (apaisada):
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Item | Stock | Entradas | Salidas | Estado  │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/resto-inventario/internal/application/report"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ report.Exporter = (*StockReportExporter)(nil)

// StockReportExporter serializa el reporte de stock a PDF.
type StockReportExporter struct{}

// NewStockReportExporter construye el exportador.
func NewStockReportExporter() *StockReportExporter { return &StockReportExporter{} }

const pdfContentType = "application/pdf"

// ExportStockReport genera el PDF y devuelve sus bytes.
func (e *StockReportExporter) ExportStockReport(rows []repository.StockReportRow, from, to time.Time) ([]byte, string, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), pdfContentType, nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(from, to time.Time) core.Row {
	rango := fmt.Sprintf("%s a %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Reporte de stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(rango, props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header("Código", 1),
		header("Item", 2),
		header("Stock", 1),
		header("Mínimo", 1),
		header("Entradas", 1),
		header("Salidas", 1),
		header("Neto", 1),
		header("Inicio", 1),
		header("Fin", 1),
		header("Tasa uso", 1),
		header("Estado", 1),
	)
}

func tableDetailRow(r repository.StockReportRow) core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8}))
	}
	statusColor := colorGray
	if r.StockStatus == entity.StockStatusLow {
		statusColor = colorAlert
	}
	return row.New(6).Add(
		cell(r.ItemID, 1),
		cell(r.ItemName, 2),
		cell(fmt.Sprintf("%d", r.CurrentStock), 1),
		cell(fmt.Sprintf("%d", r.MinimumStock), 1),
		cell(fmt.Sprintf("%d", r.TotalIn), 1),
		cell(fmt.Sprintf("%d", r.TotalOut), 1),
		cell(fmt.Sprintf("%d", r.NetMovement), 1),
		cell(fmt.Sprintf("%d", r.StockAtPeriodStart), 1),
		cell(fmt.Sprintf("%d", r.StockAtPeriodEnd), 1),
		cell(r.UtilizationRate.String(), 1),
		col.New(1).Add(text.New(r.StockStatus, props.Text{Size: 8, Color: statusColor})),
	)
}
