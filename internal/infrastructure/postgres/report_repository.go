package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el Reporting Engine.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockReport arma el reporte de stock por item para el rango [from, to].
// Los totales salen del ledger de movimientos; las fotos de stock en los
// bordes se derivan hacia atrás desde el stock actual. utilization_rate se
// calcula como NUMERIC en SQL (total_out / stock al inicio del período, 0 si
// el denominador es 0) y se escanea a decimal.Decimal.
func (r *ReportRepo) StockReport(ctx context.Context, from, to time.Time) ([]repository.StockReportRow, error) {
	query := `
		WITH agg AS (
			SELECT
				item_id,
				COALESCE(SUM(delta) FILTER (WHERE delta > 0 AND created_at BETWEEN $1 AND $2), 0) AS total_in,
				COALESCE(SUM(-delta) FILTER (WHERE delta < 0 AND created_at BETWEEN $1 AND $2), 0) AS total_out,
				COALESCE(SUM(delta) FILTER (WHERE created_at >= $1), 0) AS since_start,
				COALESCE(SUM(delta) FILTER (WHERE created_at > $2), 0) AS after_end,
				COUNT(DISTINCT transaction_id) FILTER (WHERE created_at BETWEEN $1 AND $2) AS trx_count
			FROM item_movements
			GROUP BY item_id
		)
		SELECT
			i.id,
			i.name,
			c.name,
			u.name,
			i.stock_quantity,
			i.minimum_stock,
			COALESCE(a.total_in, 0),
			COALESCE(a.total_out, 0),
			COALESCE(a.total_in, 0) - COALESCE(a.total_out, 0),
			i.stock_quantity - COALESCE(a.since_start, 0),
			i.stock_quantity - COALESCE(a.after_end, 0),
			CASE WHEN i.stock_quantity <= i.minimum_stock THEN 'LOW_STOCK' ELSE 'NORMAL' END,
			COALESCE(ROUND(
				COALESCE(a.total_out, 0)::numeric
				/ NULLIF(i.stock_quantity - COALESCE(a.since_start, 0), 0)::numeric,
			4), 0),
			COALESCE(a.trx_count, 0)
		FROM items i
		JOIN units u ON u.id = i.unit_id
		JOIN categories c ON c.id = i.category_id
		LEFT JOIN agg a ON a.item_id = i.id
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()
	var out []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		err := rows.Scan(
			&row.ItemID, &row.ItemName, &row.CategoryName, &row.UnitName,
			&row.CurrentStock, &row.MinimumStock,
			&row.TotalIn, &row.TotalOut, &row.NetMovement,
			&row.StockAtPeriodStart, &row.StockAtPeriodEnd,
			&row.StockStatus, &row.UtilizationRate, &row.TransactionCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LowStockItems devuelve los items con stock_quantity <= minimum_stock,
// leídos en vivo (nunca de un snapshot de reporte).
func (r *ReportRepo) LowStockItems(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE stock_quantity <= minimum_stock ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var out []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// MovementTotals suma las entradas y salidas de todo el ledger en el rango.
func (r *ReportRepo) MovementTotals(ctx context.Context, from, to time.Time) (totalIn, totalOut int64, err error) {
	query := `SELECT
			COALESCE(SUM(delta) FILTER (WHERE delta > 0), 0),
			COALESCE(SUM(-delta) FILTER (WHERE delta < 0), 0)
		FROM item_movements
		WHERE created_at BETWEEN $1 AND $2`
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&totalIn, &totalOut); err != nil {
		return 0, 0, fmt.Errorf("movement totals: %w", err)
	}
	return totalIn, totalOut, nil
}
