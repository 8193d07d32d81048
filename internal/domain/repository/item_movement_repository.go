package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// MovementAggregate resume los movimientos de un item en un rango de fechas,
// contra las fotos de stock en los bordes del período.
type MovementAggregate struct {
	TotalIn            int64
	TotalOut           int64
	NetMovement        int64
	StockAtPeriodStart int64
	StockAtPeriodEnd   int64
}

// ItemMovementRepository define el puerto del ledger de movimientos:
// append-only, nunca update ni delete.
type ItemMovementRepository interface {
	Create(ctx context.Context, m *entity.ItemMovement) error
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.ItemMovement, error)
	ListByTransaction(ctx context.Context, trxID string) ([]*entity.ItemMovement, error)
	// Aggregate deriva totales del rango reproduciendo los deltas contra el
	// stock actual del item.
	Aggregate(ctx context.Context, itemID string, from, to time.Time) (MovementAggregate, error)
	// SumDeltas suma todos los deltas del item (verificación de consistencia
	// ledger ↔ stock_quantity).
	SumDeltas(ctx context.Context, itemID string) (int64, error)
}
