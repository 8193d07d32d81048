// Package item implementa el CRUD de materias primas. El stock de un item
// nunca se edita por aquí; solo el Stock Ledger lo muta.
package item

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

// UseCase casos de uso de items.
type UseCase struct {
	txRunner     repository.TxRunner
	itemRepo     repository.ItemRepository
	unitRepo     repository.UnitRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso de items.
func NewUseCase(
	txRunner repository.TxRunner,
	itemRepo repository.ItemRepository,
	unitRepo repository.UnitRepository,
	categoryRepo repository.CategoryRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, unitRepo: unitRepo, categoryRepo: categoryRepo}
}

// Create da de alta un item con stock inicial cero. El código BB-XXXX se
// genera dentro de la misma transacción que el insert que lo consume.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitID == "" || in.CategoryID == "" || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.UnitID, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.Item{
		Name:          name,
		UnitID:        in.UnitID,
		CategoryID:    in.CategoryID,
		StockQuantity: 0,
		MinimumStock:  in.MinimumStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		code, err := r.Items.NextCode(ctx)
		if err != nil {
			return err
		}
		item.ID = code
		return r.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve un item por código.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista items paginados.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(ctx, limit, offset)
}

// Update parchea los campos editables de un item. StockQuantity queda fuera
// del parche a propósito.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.UnitID != nil {
		item.UnitID = *in.UnitID
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinimumStock = *in.MinimumStock
	}
	if err := uc.checkRefs(ctx, item.UnitID, item.CategoryID); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete elimina un item. Solo ADMIN; items referenciados por movimientos o
// líneas de transacción devuelven ErrConflict (restricción FK).
func (uc *UseCase) Delete(ctx context.Context, role, id string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.itemRepo.Delete(ctx, id)
}

func (uc *UseCase) checkRefs(ctx context.Context, unitID, categoryID string) error {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrInvalidInput
	}
	return nil
}
