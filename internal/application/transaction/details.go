package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/application/ledger"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
	rules "github.com/jhoicas/resto-inventario/internal/domain/transaction"
)

// AddDetails agrega líneas a una transacción existente. Solo permitido
// mientras la cabecera está en PENDING; re-corre la validación por tipo.
func (uc *UseCase) AddDetails(ctx context.Context, userID, trxID string, in dto.AddDetailsRequest) ([]*entity.DetailTransaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	trx, err := uc.trxRepo.GetByID(ctx, trxID)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, domain.ErrNotFound
	}
	if trx.Status != entity.StatusPending {
		return nil, domain.ErrConflict
	}

	inputs := toDetailInputs(in.Details)
	catalog, err := uc.catalogFor(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if vs := rules.Validate(trx.Type, inputs, catalog); len(vs) > 0 {
		return nil, &rules.ValidationError{Violations: vs}
	}

	details := buildDetails(trx.Type, inputs, time.Now())
	for _, d := range details {
		d.TransactionID = trxID
	}
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		return r.Transactions.CreateDetails(ctx, details)
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateDetail parchea una línea según las reglas por tipo:
//
//	CHECK  nunca editable (las líneas de conteo las computa el sistema)
//	IN     editable en {PENDING, ORDERED}: conteo de recepción, nota, caducidad
//	OUT    editable en {PENDING, ORDERED}: cantidad y nota
func (uc *UseCase) UpdateDetail(ctx context.Context, userID, detailID string, patch dto.UpdateDetailRequest) (*entity.DetailTransaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	detail, trx, err := uc.detailWithParent(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if trx.Type == entity.TransactionTypeCHECK {
		return nil, domain.ErrConflict
	}
	if rules.IsTerminal(detail.Status) || rules.Stage(detail.Status) > rules.Stage(entity.StatusOrdered) {
		return nil, domain.ErrConflict
	}

	if patch.Note != nil {
		detail.Note = *patch.Note
	}
	if patch.ExpiryDate != nil {
		detail.ExpiryDate = patch.ExpiryDate
	}

	switch trx.Type {
	case entity.TransactionTypeIN:
		if patch.Quantity != nil {
			if *patch.Quantity <= 0 {
				return nil, &rules.ValidationError{Violations: []rules.Violation{
					{Field: "quantity", Message: "la cantidad debe ser mayor que cero"},
				}}
			}
			detail.Quantity = *patch.Quantity
		}
		if patch.QuantityCheck != nil {
			detail.QuantityCheck = patch.QuantityCheck
		}
		// La restricción aritmética se re-evalúa contra los valores finales:
		// parchear solo quantity también puede invalidar un conteo previo.
		if detail.QuantityCheck != nil {
			if vs := rules.ValidateCheckUpdate(detail.Quantity, *detail.QuantityCheck, detail.Note); len(vs) > 0 {
				return nil, &rules.ValidationError{Violations: vs}
			}
			if *detail.QuantityCheck == entity.QuantityCheckUnset {
				detail.QuantityDifference = nil
			} else {
				diff := *detail.QuantityCheck - detail.Quantity
				detail.QuantityDifference = &diff
			}
		}

	case entity.TransactionTypeOUT:
		if patch.Quantity != nil {
			item, err := uc.itemRepo.GetByID(ctx, detail.ItemID)
			if err != nil {
				return nil, err
			}
			var vs []rules.Violation
			if *patch.Quantity <= 0 {
				vs = append(vs, rules.Violation{Field: "quantity", Message: "la cantidad debe ser mayor que cero"})
			} else if item != nil && *patch.Quantity > item.StockQuantity {
				vs = append(vs, rules.Violation{Field: "quantity", Message: "stock insuficiente"})
			}
			if len(vs) > 0 {
				return nil, &rules.ValidationError{Violations: vs}
			}
			detail.Quantity = *patch.Quantity
		}
		if strings.TrimSpace(detail.Note) == "" {
			return nil, &rules.ValidationError{Violations: []rules.Violation{
				{Field: "note", Message: "la nota es obligatoria en salidas"},
			}}
		}
	}

	detail.UpdatedAt = time.Now()
	if err := uc.trxRepo.UpdateDetail(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateDetailStatus transiciona el estado de una línea. Al cruzar el umbral
// que afecta stock (RECEIVED para IN, COMPLETED para OUT/CHECK) aplica el
// movimiento con la cantidad reconciliada, todo en una transacción de BD.
// Cancelar una línea IN ya recibida revierte su stock con un movimiento
// compensatorio (sujeto al re-chequeo de no-negatividad del ledger).
func (uc *UseCase) UpdateDetailStatus(ctx context.Context, userID, detailID, newStatus string) (*entity.DetailTransaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	detail, trx, err := uc.detailWithParent(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if trx.IsTerminal() {
		return nil, domain.ErrTerminalState
	}
	if err := rules.CanTransition(detail.Status, newStatus); err != nil {
		return nil, err
	}

	oldStatus := detail.Status
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		// Escritura guardada: si otra transición ganó la carrera desde que se
		// leyó la línea, la guarda falla y nada de lo que sigue se aplica.
		if err := r.Transactions.UpdateDetailStatus(ctx, detailID, oldStatus, newStatus); err != nil {
			return err
		}

		switch {
		case newStatus != entity.StatusCancelled && rules.PostsStock(trx.Type, oldStatus, newStatus):
			delta, post := movementDelta(trx.Type, detail)
			if post {
				if _, err := ledger.ApplyMovementInTx(ctx, r.Items, r.Movements,
					detail.ItemID, trx.ID, trx.Type, delta, detail.ExpiryDate, now); err != nil {
					return err
				}
			}

		case newStatus == entity.StatusCancelled && hasPostedStock(trx.Type, oldStatus):
			// Reversión: la recepción cancelada devuelve las unidades.
			delta, post := movementDelta(trx.Type, detail)
			if post {
				if _, err := ledger.ApplyMovementInTx(ctx, r.Items, r.Movements,
					detail.ItemID, trx.ID, trx.Type, -delta, detail.ExpiryDate, now); err != nil {
					return err
				}
			}
		}

		// Sincronizar el estado de la cabecera con sus líneas.
		details, err := r.Transactions.ListDetails(ctx, trx.ID)
		if err != nil {
			return err
		}
		if parent := rules.ParentStatus(trx.Status, details); parent != trx.Status {
			if err := r.Transactions.UpdateStatus(ctx, trx.ID, parent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	detail.Status = newStatus
	detail.UpdatedAt = now
	return detail, nil
}

// DeleteDetail elimina una línea. Solo ADMIN, y solo mientras la línea no ha
// afectado stock ni alcanzado un estado terminal.
func (uc *UseCase) DeleteDetail(ctx context.Context, userID, role, detailID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	detail, trx, err := uc.detailWithParent(ctx, detailID)
	if err != nil {
		return err
	}
	if rules.IsTerminal(detail.Status) || hasPostedStock(trx.Type, detail.Status) {
		return domain.ErrConflict
	}
	return uc.trxRepo.DeleteDetail(ctx, detailID)
}

// Delete elimina una transacción completa (cascadea a sus líneas). Solo
// ADMIN, solo si es no terminal y ningún movimiento fue aplicado aún.
func (uc *UseCase) Delete(ctx context.Context, userID, role, trxID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	trx, err := uc.trxRepo.GetByID(ctx, trxID)
	if err != nil {
		return err
	}
	if trx == nil {
		return domain.ErrNotFound
	}
	if trx.IsTerminal() {
		return domain.ErrTerminalState
	}
	details, err := uc.trxRepo.ListDetails(ctx, trxID)
	if err != nil {
		return err
	}
	for _, d := range details {
		if hasPostedStock(trx.Type, d.Status) {
			return domain.ErrConflict
		}
	}
	return uc.trxRepo.Delete(ctx, trxID)
}

// detailWithParent carga una línea y su cabecera.
func (uc *UseCase) detailWithParent(ctx context.Context, detailID string) (*entity.DetailTransaction, *entity.Transaction, error) {
	detail, err := uc.trxRepo.GetDetail(ctx, detailID)
	if err != nil {
		return nil, nil, err
	}
	if detail == nil {
		return nil, nil, domain.ErrNotFound
	}
	trx, err := uc.trxRepo.GetByID(ctx, detail.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	if trx == nil {
		return nil, nil, domain.ErrNotFound
	}
	return detail, trx, nil
}

// movementDelta calcula el delta a aplicar al stock para una línea que cruza
// su umbral: IN suma la cantidad reconciliada, OUT la resta, CHECK aplica la
// diferencia física-sistema. post=false cuando no hay nada que aplicar
// (conteo sin diferencia).
func movementDelta(trxType string, d *entity.DetailTransaction) (delta int64, post bool) {
	switch trxType {
	case entity.TransactionTypeIN:
		return d.ReconciledQuantity(), true
	case entity.TransactionTypeOUT:
		return -d.ReconciledQuantity(), true
	case entity.TransactionTypeCHECK:
		if d.QuantityDifference == nil || *d.QuantityDifference == 0 {
			return 0, false
		}
		return *d.QuantityDifference, true
	}
	return 0, false
}

// hasPostedStock indica si una línea en `status` ya cruzó el umbral que
// afecta stock para su tipo.
func hasPostedStock(trxType, status string) bool {
	threshold := rules.Stage(entity.StatusCompleted)
	if trxType == entity.TransactionTypeIN {
		threshold = rules.Stage(entity.StatusReceived)
	}
	return rules.Stage(status) >= threshold
}
