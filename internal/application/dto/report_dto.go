package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRowDTO fila del reporte de stock (rango de fechas).
type StockReportRowDTO struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	Unit               string          `json:"unit"`
	CurrentStock       int64           `json:"current_stock"`
	MinimumStock       int64           `json:"minimum_stock"`
	TotalIn            int64           `json:"total_in"`
	TotalOut           int64           `json:"total_out"`
	NetMovement        int64           `json:"net_movement"`
	StockAtPeriodStart int64           `json:"stock_at_period_start"`
	StockAtPeriodEnd   int64           `json:"stock_at_period_end"`
	StockStatus        string          `json:"stock_status"`
	UtilizationRate    decimal.Decimal `json:"utilization_rate"`
	TransactionCount   int64           `json:"transaction_count"`
}

// MovementAggregateDTO resumen de movimientos de un item en un rango.
type MovementAggregateDTO struct {
	ItemID             string `json:"item_id"`
	TotalIn            int64  `json:"total_in"`
	TotalOut           int64  `json:"total_out"`
	NetMovement        int64  `json:"net_movement"`
	StockAtPeriodStart int64  `json:"stock_at_period_start"`
	StockAtPeriodEnd   int64  `json:"stock_at_period_end"`
}

// MovementResponse proyección JSON de un movimiento del ledger.
type MovementResponse struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transaction_id"`
	ItemID        string     `json:"item_id"`
	Type          string     `json:"type"`
	Delta         int64      `json:"delta"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DashboardResponse resumen para el tablero principal.
type DashboardResponse struct {
	PendingCounts PendingCountsResponse `json:"pending_counts"`
	LowStockItems []ItemResponse        `json:"low_stock_items"`
	// Totales del ledger del día en curso.
	TodayTotalIn  int64 `json:"today_total_in"`
	TodayTotalOut int64 `json:"today_total_out"`
}
