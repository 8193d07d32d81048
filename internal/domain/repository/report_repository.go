package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// StockReportRow es una fila del reporte de stock por item dentro de un rango.
// UtilizationRate = total_out / stock_at_period_start (0 si el denominador es 0),
// calculado como NUMERIC en SQL y escaneado vía shopspring/decimal.
type StockReportRow struct {
	ItemID             string
	ItemName           string
	CategoryName       string
	UnitName           string
	CurrentStock       int64
	MinimumStock       int64
	TotalIn            int64
	TotalOut           int64
	NetMovement        int64
	StockAtPeriodStart int64
	StockAtPeriodEnd   int64
	StockStatus        string // NORMAL | LOW_STOCK
	UtilizationRate    decimal.Decimal
	TransactionCount   int64
}

// ReportRepository define consultas de solo lectura para reportes y alertas.
// Pueden correr contra una réplica ligeramente desfasada: los reportes son
// informativos, no gobiernan flujo de control.
type ReportRepository interface {
	StockReport(ctx context.Context, from, to time.Time) ([]StockReportRow, error)
	// LowStockItems: stock_quantity <= minimum_stock, vista en vivo del ledger.
	LowStockItems(ctx context.Context) ([]*entity.Item, error)
	// MovementTotals suma entradas y salidas de todos los items en el rango.
	MovementTotals(ctx context.Context, from, to time.Time) (totalIn, totalOut int64, err error)
}
