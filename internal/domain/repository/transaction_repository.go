package repository

import (
	"context"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones y
// sus líneas de detalle. La cabecera es dueña exclusiva de sus líneas
// (el borrado cascadea).
type TransactionRepository interface {
	// NextCode calcula el siguiente código TRX-{TYPE}-XXXX, secuencia
	// independiente por tipo. Mismas reglas de serialización que
	// ItemRepository.NextCode.
	NextCode(ctx context.Context, trxType string) (string, error)
	Create(ctx context.Context, trx *entity.Transaction) error
	// CreateDetails inserta las líneas en lotes acotados (pgx.Batch).
	CreateDetails(ctx context.Context, details []*entity.DetailTransaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, trxType, status string, limit, offset int) ([]*entity.Transaction, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	GetDetail(ctx context.Context, detailID string) (*entity.DetailTransaction, error)
	ListDetails(ctx context.Context, trxID string) ([]*entity.DetailTransaction, error)
	UpdateDetail(ctx context.Context, d *entity.DetailTransaction) error
	// UpdateDetailStatus cambia el estado solo si la línea sigue en
	// fromStatus (escritura guardada: dos transiciones concurrentes sobre la
	// misma línea no pueden cruzar el umbral de stock dos veces). Si la
	// guarda no coincide devuelve ErrConflict.
	UpdateDetailStatus(ctx context.Context, detailID, fromStatus, toStatus string) error
	DeleteDetail(ctx context.Context, detailID string) error

	// PendingCounts cuenta transacciones PENDING por tipo (contadores del
	// dashboard; consulta pull, sin estado compartido).
	PendingCounts(ctx context.Context) (map[string]int, error)
}
