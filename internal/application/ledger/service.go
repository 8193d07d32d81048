// Package ledger implementa el Stock Ledger: el único camino permitido para
// mutar Item.StockQuantity, siempre acompañado de un ItemMovement inmutable.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
	"github.com/jhoicas/resto-inventario/pkg/metrics"
)

// ApplyMovementInTx aplica un delta al stock de un item usando repositorios
// atados a la transacción del caller: bloquea la fila (SELECT FOR UPDATE),
// re-verifica no-negatividad, actualiza stock_quantity y agrega el movimiento.
//
// El re-chequeo es obligatorio aunque el validador ya haya verificado stock:
// entre validación y aplicación otra transacción pudo consumir unidades, y el
// stock nunca puede quedar negativo (ErrInsufficientStock en ese caso).
func ApplyMovementInTx(
	ctx context.Context,
	items repository.ItemRepository,
	movements repository.ItemMovementRepository,
	itemID, transactionID, movementType string,
	delta int64,
	expiryDate *time.Time,
	now time.Time,
) (*entity.ItemMovement, error) {
	item, err := items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	newQty := item.StockQuantity + delta
	if newQty < 0 {
		metrics.InsufficientStockRejections.Inc()
		return nil, domain.ErrInsufficientStock
	}
	if err := items.UpdateStock(ctx, itemID, newQty); err != nil {
		return nil, err
	}
	mov := &entity.ItemMovement{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		ItemID:        itemID,
		Type:          movementType,
		Delta:         delta,
		ExpiryDate:    expiryDate,
		CreatedAt:     now,
	}
	if err := movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	metrics.MovementsApplied.WithLabelValues(movementType).Inc()
	return mov, nil
}

// UseCase expone las lecturas del ledger y la aplicación de movimientos en
// transacción propia (para callers fuera del ciclo de vida de transacciones).
type UseCase struct {
	txRunner  repository.TxRunner
	itemRepo  repository.ItemRepository
	movements repository.ItemMovementRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(txRunner repository.TxRunner, itemRepo repository.ItemRepository, movements repository.ItemMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, movements: movements}
}

// CurrentStock devuelve la cantidad en mano autoritativa de un item.
func (uc *UseCase) CurrentStock(ctx context.Context, itemID string) (int64, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	return item.StockQuantity, nil
}

// Aggregate resume los movimientos de un item en el rango, con las fotos de
// stock en los bordes del período.
func (uc *UseCase) Aggregate(ctx context.Context, itemID string, from, to time.Time) (repository.MovementAggregate, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return repository.MovementAggregate{}, err
	}
	if item == nil {
		return repository.MovementAggregate{}, domain.ErrNotFound
	}
	return uc.movements.Aggregate(ctx, itemID, from, to)
}

// Movements lista el historial de movimientos de un item.
func (uc *UseCase) Movements(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.ItemMovement, error) {
	return uc.movements.ListByItem(ctx, itemID, from, to, limit, offset)
}

// Reconcile verifica el invariante central del ledger para un item:
// sum(deltas aplicados) == stock_quantity actual.
func (uc *UseCase) Reconcile(ctx context.Context, itemID string) (consistent bool, ledgerSum, stock int64, err error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return false, 0, 0, err
	}
	if item == nil {
		return false, 0, 0, domain.ErrNotFound
	}
	sum, err := uc.movements.SumDeltas(ctx, itemID)
	if err != nil {
		return false, 0, 0, err
	}
	return sum == item.StockQuantity, sum, item.StockQuantity, nil
}
