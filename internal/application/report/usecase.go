// Package report implementa el Reporting Engine: reporte de stock por rango
// de fechas, alertas de stock bajo, dashboard y exportación a XLSX/PDF.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Exporter serializa un reporte de stock a un formato de archivo. Devuelve el
// contenido y el content-type a servir.
type Exporter interface {
	ExportStockReport(rows []repository.StockReportRow, from, to time.Time) (content []byte, contentType string, err error)
}

// UseCase casos de uso de reportes.
type UseCase struct {
	reportRepo repository.ReportRepository
	trxRepo    repository.TransactionRepository
	exporters  map[string]Exporter
}

// NewUseCase construye el Reporting Engine. exporters mapea formato → exporter;
// formatos sin exporter registrado devuelven ErrInvalidInput al exportar.
func NewUseCase(reportRepo repository.ReportRepository, trxRepo repository.TransactionRepository, exporters map[string]Exporter) *UseCase {
	if exporters == nil {
		exporters = map[string]Exporter{}
	}
	return &UseCase{reportRepo: reportRepo, trxRepo: trxRepo, exporters: exporters}
}

// StockReport devuelve las filas del reporte de stock para el rango [from, to].
// Rango invertido es inválido.
func (uc *UseCase) StockReport(ctx context.Context, from, to time.Time) ([]repository.StockReportRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.reportRepo.StockReport(ctx, from, to)
}

// ExportStockReport genera el reporte y lo serializa en el formato pedido.
func (uc *UseCase) ExportStockReport(ctx context.Context, from, to time.Time, format string) ([]byte, string, error) {
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, "", domain.ErrInvalidInput
	}
	rows, err := uc.StockReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	return exp.ExportStockReport(rows, from, to)
}

// LowStockItems devuelve los items en o por debajo de su umbral mínimo,
// leídos en vivo del ledger.
func (uc *UseCase) LowStockItems(ctx context.Context) ([]*entity.Item, error) {
	return uc.reportRepo.LowStockItems(ctx)
}

// Dashboard arma el resumen del tablero: contadores PENDING por tipo, alertas
// de stock bajo y los totales de movimiento del día. Es una consulta pull, se
// recalcula en cada llamada.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.trxRepo.PendingCounts(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.reportRepo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayIn, todayOut, err := uc.reportRepo.MovementTotals(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, len(low))
	for i, it := range low {
		items[i] = dto.ItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			UnitID:        it.UnitID,
			CategoryID:    it.CategoryID,
			StockQuantity: it.StockQuantity,
			MinimumStock:  it.MinimumStock,
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		}
	}
	return &dto.DashboardResponse{
		PendingCounts: dto.PendingCountsResponse{
			In:    counts[entity.TransactionTypeIN],
			Out:   counts[entity.TransactionTypeOUT],
			Check: counts[entity.TransactionTypeCHECK],
		},
		LowStockItems: items,
		TodayTotalIn:  todayIn,
		TodayTotalOut: todayOut,
	}, nil
}
