// Package catalog implementa el CRUD de las tablas de referencia:
// proveedores, unidades y categorías.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

// UseCase agrupa los casos de uso de catálogo.
type UseCase struct {
	supplierRepo repository.SupplierRepository
	unitRepo     repository.UnitRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	supplierRepo repository.SupplierRepository,
	unitRepo repository.UnitRepository,
	categoryRepo repository.CategoryRepository,
) *UseCase {
	return &UseCase{supplierRepo: supplierRepo, unitRepo: unitRepo, categoryRepo: categoryRepo}
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

// CreateSupplier da de alta un proveedor. Nombre único (ErrDuplicate si choca).
func (uc *UseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetSupplier devuelve un proveedor por id.
func (uc *UseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListSuppliers lista proveedores paginados.
func (uc *UseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(ctx, limit, offset)
}

// UpdateSupplier modifica un proveedor existente.
func (uc *UseCase) UpdateSupplier(ctx context.Context, id string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	s, err := uc.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		s.Name = name
	}
	if in.Phone != "" {
		s.Phone = in.Phone
	}
	if in.Address != "" {
		s.Address = in.Address
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSupplier elimina un proveedor. Solo ADMIN; proveedores referenciados
// por líneas devuelven ErrConflict (restricción FK).
func (uc *UseCase) DeleteSupplier(ctx context.Context, role, id string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := uc.GetSupplier(ctx, id); err != nil {
		return err
	}
	return uc.supplierRepo.Delete(ctx, id)
}

// ─── Unidades ────────────────────────────────────────────────────────────────

// CreateUnit da de alta una unidad de medida. Nombre único.
func (uc *UseCase) CreateUnit(ctx context.Context, in dto.NameRequest) (*entity.Unit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	u := &entity.Unit{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUnits lista unidades paginadas.
func (uc *UseCase) ListUnits(ctx context.Context, limit, offset int) ([]*entity.Unit, error) {
	return uc.unitRepo.List(ctx, limit, offset)
}

// UpdateUnit renombra una unidad.
func (uc *UseCase) UpdateUnit(ctx context.Context, id string, in dto.NameRequest) (*entity.Unit, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUnit elimina una unidad. Solo ADMIN; unidades en uso devuelven
// ErrConflict.
func (uc *UseCase) DeleteUnit(ctx context.Context, role, id string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.unitRepo.Delete(ctx, id)
}

// ─── Categorías ──────────────────────────────────────────────────────────────

// CreateCategory da de alta una categoría. Nombre único.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.NameRequest) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories lista categorías paginadas.
func (uc *UseCase) ListCategories(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx, limit, offset)
}

// UpdateCategory renombra una categoría.
func (uc *UseCase) UpdateCategory(ctx context.Context, id string, in dto.NameRequest) (*entity.Category, error) {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory elimina una categoría. Solo ADMIN; categorías en uso
// devuelven ErrConflict.
func (uc *UseCase) DeleteCategory(ctx context.Context, role, id string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(ctx, id)
}
