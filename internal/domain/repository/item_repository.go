package repository

import (
	"context"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para items (materia prima).
// UpdateStock solo debe invocarse desde el ledger, dentro de una transacción
// que haya bloqueado la fila con GetForUpdate.
type ItemRepository interface {
	// NextCode calcula el siguiente código BB-XXXX escaneando el sufijo máximo
	// existente. Debe llamarse dentro de la misma transacción que el insert
	// que lo consume (toma un advisory lock para serializar generadores).
	NextCode(ctx context.Context) (string, error)
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDs devuelve el catálogo id → item para el validador. IDs ausentes
	// simplemente no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error)
	// GetForUpdate bloquea la fila del item (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock fija la cantidad en stock y refresca updated_at.
	UpdateStock(ctx context.Context, id string, quantity int64) error
	Delete(ctx context.Context, id string) error
}
