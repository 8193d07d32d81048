// Package excel exporta reportes a XLSX usando excelize.
package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/resto-inventario/internal/application/report"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

var _ report.Exporter = (*StockReportExporter)(nil)

// StockReportExporter serializa el reporte de stock a un libro XLSX.
type StockReportExporter struct{}

// NewStockReportExporter construye el exportador.
func NewStockReportExporter() *StockReportExporter { return &StockReportExporter{} }

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStockReport genera el XLSX: una hoja con encabezado, una fila por item.
func (e *StockReportExporter) ExportStockReport(rows []repository.StockReportRow, from, to time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Código", "Item", "Categoría", "Unidad",
		"Stock actual", "Stock mínimo",
		"Entradas", "Salidas", "Movimiento neto",
		"Stock inicio período", "Stock fin período",
		"Estado", "Tasa de uso", "Transacciones",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("excel: encabezado: %w", err)
	}

	rowIdx := 2
	for _, r := range rows {
		excelRow := []interface{}{
			r.ItemID, r.ItemName, r.CategoryName, r.UnitName,
			r.CurrentStock, r.MinimumStock,
			r.TotalIn, r.TotalOut, r.NetMovement,
			r.StockAtPeriodStart, r.StockAtPeriodEnd,
			r.StockStatus, r.UtilizationRate.String(), r.TransactionCount,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, "", fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, "", fmt.Errorf("excel: fila %d: %w", rowIdx, err)
		}
		rowIdx++
	}

	title := fmt.Sprintf("Reporte de stock %s a %s",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
		return nil, "", fmt.Errorf("excel: propiedades: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), xlsxContentType, nil
}
