package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

var _ repository.ItemMovementRepository = (*ItemMovementRepo)(nil)

// ItemMovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// La tabla es append-only: este adaptador nunca hace UPDATE ni DELETE.
type ItemMovementRepo struct {
	q Querier
}

// NewItemMovementRepository construye el adaptador de movimientos.
func NewItemMovementRepository(q Querier) *ItemMovementRepo {
	return &ItemMovementRepo{q: q}
}

const movementColumns = `id, transaction_id, item_id, type, delta, expiry_date, created_at`

// Create agrega un movimiento al ledger.
func (r *ItemMovementRepo) Create(ctx context.Context, m *entity.ItemMovement) error {
	query := `
		INSERT INTO item_movements (id, transaction_id, item_id, type, delta, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ItemID, m.Type, m.Delta, m.ExpiryDate, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un item, más recientes primero, con
// filtro opcional de rango de fechas.
func (r *ItemMovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.ItemMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + movementColumns + ` FROM item_movements WHERE item_id = $1`
	args := []any{itemID}
	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	return r.queryMovements(ctx, query, args...)
}

// ListByTransaction lista los movimientos generados por una transacción.
func (r *ItemMovementRepo) ListByTransaction(ctx context.Context, trxID string) ([]*entity.ItemMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM item_movements
		WHERE transaction_id = $1 ORDER BY created_at`
	return r.queryMovements(ctx, query, trxID)
}

// Aggregate resume los movimientos del item en [from, to]. Las fotos de stock
// en los bordes se derivan hacia atrás desde el stock actual, restando los
// deltas posteriores a cada borde.
func (r *ItemMovementRepo) Aggregate(ctx context.Context, itemID string, from, to time.Time) (repository.MovementAggregate, error) {
	query := `
		SELECT
			i.stock_quantity,
			COALESCE(SUM(m.delta) FILTER (WHERE m.delta > 0 AND m.created_at BETWEEN $2 AND $3), 0) AS total_in,
			COALESCE(SUM(-m.delta) FILTER (WHERE m.delta < 0 AND m.created_at BETWEEN $2 AND $3), 0) AS total_out,
			COALESCE(SUM(m.delta) FILTER (WHERE m.created_at >= $2), 0) AS since_start,
			COALESCE(SUM(m.delta) FILTER (WHERE m.created_at > $3), 0) AS after_end
		FROM items i
		LEFT JOIN item_movements m ON m.item_id = i.id
		WHERE i.id = $1
		GROUP BY i.stock_quantity`
	var stock, sinceStart, afterEnd int64
	var agg repository.MovementAggregate
	err := r.q.QueryRow(ctx, query, itemID, from, to).Scan(
		&stock, &agg.TotalIn, &agg.TotalOut, &sinceStart, &afterEnd,
	)
	if err != nil {
		return repository.MovementAggregate{}, fmt.Errorf("aggregate movements: %w", err)
	}
	agg.NetMovement = agg.TotalIn - agg.TotalOut
	agg.StockAtPeriodStart = stock - sinceStart
	agg.StockAtPeriodEnd = stock - afterEnd
	return agg, nil
}

// SumDeltas suma todos los deltas aplicados al item.
func (r *ItemMovementRepo) SumDeltas(ctx context.Context, itemID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM item_movements WHERE item_id = $1`, itemID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}

func (r *ItemMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.ItemMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.ItemMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.ItemMovement, error) {
	var m entity.ItemMovement
	err := row.Scan(&m.ID, &m.TransactionID, &m.ItemID, &m.Type, &m.Delta, &m.ExpiryDate, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
