// Package transaction implementa el Lifecycle Manager: creación de
// transacciones, mutación de líneas y transiciones de estado, orquestando
// validador, generación de códigos y Stock Ledger en una unidad atómica.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
	rules "github.com/jhoicas/resto-inventario/internal/domain/transaction"
	"github.com/jhoicas/resto-inventario/pkg/logger"
	"github.com/jhoicas/resto-inventario/pkg/metrics"
)

// UseCase orquesta el ciclo de vida de transacciones de inventario.
type UseCase struct {
	txRunner     repository.TxRunner
	itemRepo     repository.ItemRepository
	trxRepo      repository.TransactionRepository
	supplierRepo repository.SupplierRepository
	unitRepo     repository.UnitRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewUseCase construye el Lifecycle Manager. notifier puede ser NopNotifier.
func NewUseCase(
	txRunner repository.TxRunner,
	itemRepo repository.ItemRepository,
	trxRepo repository.TransactionRepository,
	supplierRepo repository.SupplierRepository,
	unitRepo repository.UnitRepository,
	notifier Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		trxRepo:      trxRepo,
		supplierRepo: supplierRepo,
		unitRepo:     unitRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Create valida las líneas propuestas y persiste cabecera + detalles en una
// sola transacción de BD, generando el código TRX-{TYPE}-XXXX dentro de esa
// misma transacción (la generación por MAX-scan no es segura sin serializar
// con el insert que la consume). Estado inicial: PENDING.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !entity.ValidTransactionType(in.Type) || len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}

	inputs := toDetailInputs(in.Details)
	catalog, err := uc.catalogFor(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if vs := rules.Validate(in.Type, inputs, catalog); len(vs) > 0 {
		return nil, &rules.ValidationError{Violations: vs}
	}

	now := time.Now()
	trx := &entity.Transaction{
		Type:      in.Type,
		Status:    entity.StatusPending,
		UserID:    userID,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	details := buildDetails(in.Type, inputs, now)

	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		code, err := r.Transactions.NextCode(ctx, in.Type)
		if err != nil {
			return err
		}
		trx.ID = code
		if err := r.Transactions.Create(ctx, trx); err != nil {
			return err
		}
		for _, d := range details {
			d.TransactionID = code
		}
		return r.Transactions.CreateDetails(ctx, details)
	})
	if err != nil {
		return nil, err
	}
	trx.Details = details
	metrics.TransactionsCreated.WithLabelValues(in.Type).Inc()

	if in.Type == entity.TransactionTypeIN {
		uc.notifyPurchases(ctx, details, catalog)
	}
	return trx, nil
}

// Get devuelve una transacción con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	trx, err := uc.trxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.trxRepo.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	trx.Details = details
	return trx, nil
}

// List lista transacciones filtrando por tipo y/o estado (vacío = todos).
func (uc *UseCase) List(ctx context.Context, trxType, status string, limit, offset int) ([]*entity.Transaction, error) {
	return uc.trxRepo.List(ctx, trxType, status, limit, offset)
}

// PendingCounts devuelve los contadores PENDING por tipo para el dashboard.
// Consulta pull: cualquier caller puede re-consultar cuando quiera, sin
// estado compartido mutable.
func (uc *UseCase) PendingCounts(ctx context.Context) (dto.PendingCountsResponse, error) {
	counts, err := uc.trxRepo.PendingCounts(ctx)
	if err != nil {
		return dto.PendingCountsResponse{}, err
	}
	return dto.PendingCountsResponse{
		In:    counts[entity.TransactionTypeIN],
		Out:   counts[entity.TransactionTypeOUT],
		Check: counts[entity.TransactionTypeCHECK],
	}, nil
}

// catalogFor carga el catálogo de items referenciados por las líneas.
func (uc *UseCase) catalogFor(ctx context.Context, inputs []rules.DetailInput) (rules.Catalog, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, d := range inputs {
		if !seen[d.ItemID] {
			seen[d.ItemID] = true
			ids = append(ids, d.ItemID)
		}
	}
	items, err := uc.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return rules.Catalog(items), nil
}

// notifyPurchases agrupa las líneas IN por proveedor y despacha el aviso de
// compra. Corre después del commit; un fallo de notificación no revierte la
// transacción, solo se loggea.
func (uc *UseCase) notifyPurchases(ctx context.Context, details []*entity.DetailTransaction, catalog rules.Catalog) {
	bySupplier := make(map[string][]PurchaseItem)
	for _, d := range details {
		if d.SupplierID == nil {
			continue
		}
		item := catalog[d.ItemID]
		pi := PurchaseItem{ItemID: d.ItemID, Quantity: d.Quantity}
		if item != nil {
			pi.ItemName = item.Name
			if unit, err := uc.unitRepo.GetByID(ctx, item.UnitID); err == nil && unit != nil {
				pi.UnitName = unit.Name
			}
		}
		bySupplier[*d.SupplierID] = append(bySupplier[*d.SupplierID], pi)
	}
	for supplierID, items := range bySupplier {
		name := supplierID
		if s, err := uc.supplierRepo.GetByID(ctx, supplierID); err == nil && s != nil {
			name = s.Name
		}
		if err := uc.notifier.Notify(ctx, supplierID, name, items); err != nil {
			uc.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("notificación de compra fallida")
		}
	}
}

// toDetailInputs convierte las líneas del request al tipo del validador.
func toDetailInputs(reqs []dto.DetailRequest) []rules.DetailInput {
	out := make([]rules.DetailInput, len(reqs))
	for i, r := range reqs {
		out[i] = rules.DetailInput{
			ItemID:             r.ItemID,
			SupplierID:         r.SupplierID,
			Quantity:           r.Quantity,
			QuantityCheck:      r.QuantityCheck,
			QuantityDifference: r.QuantityDifference,
			Note:               r.Note,
			ExpiryDate:         r.ExpiryDate,
		}
	}
	return out
}

// buildDetails materializa las líneas validadas. Para CHECK la diferencia se
// deriva siempre de física - sistema (restricción aritmética, no se confía en
// el valor del cliente).
func buildDetails(trxType string, inputs []rules.DetailInput, now time.Time) []*entity.DetailTransaction {
	out := make([]*entity.DetailTransaction, len(inputs))
	for i, in := range inputs {
		d := &entity.DetailTransaction{
			ID:            uuid.New().String(),
			ItemID:        in.ItemID,
			SupplierID:    in.SupplierID,
			Quantity:      in.Quantity,
			QuantityCheck: in.QuantityCheck,
			Note:          in.Note,
			ExpiryDate:    in.ExpiryDate,
			Status:        entity.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if trxType == entity.TransactionTypeCHECK && in.QuantityCheck != nil {
			diff := *in.QuantityCheck - in.Quantity
			d.QuantityDifference = &diff
		}
		out[i] = d
	}
	return out
}
