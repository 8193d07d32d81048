package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const trxColumns = `id, type, status, user_id, date, created_at, updated_at`

const detailColumns = `id, transaction_id, item_id, supplier_id, quantity,
	quantity_check, quantity_difference, note, expiry_date, status, created_at, updated_at`

// detailBatchSize limita el tamaño de cada lote de inserts de líneas.
const detailBatchSize = 100

// NextCode calcula el siguiente código TRX-{TYPE}-XXXX. Secuencia
// independiente por tipo, serializada con un advisory lock por tipo.
func (r *TransactionRepo) NextCode(ctx context.Context, trxType string) (string, error) {
	lockKey := "transactions_code_" + trxType
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return "", fmt.Errorf("advisory lock %s: %w", lockKey, err)
	}
	prefix := "TRX-" + trxType + "-"
	var max int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(split_part(id, '-', 3)::int), 0)
		FROM transactions WHERE id LIKE $1`, prefix+"%").Scan(&max)
	if err != nil {
		return "", fmt.Errorf("next transaction code: %w", err)
	}
	return prefix + fmt.Sprintf("%04d", max+1), nil
}

// Create inserta la cabecera de una transacción.
func (r *TransactionRepo) Create(ctx context.Context, trx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, status, user_id, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		trx.ID, trx.Type, trx.Status, trx.UserID, trx.Date, trx.CreatedAt, trx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// CreateDetails inserta las líneas en lotes acotados vía pgx.Batch, para no
// armar un batch gigante en memoria con transacciones grandes.
func (r *TransactionRepo) CreateDetails(ctx context.Context, details []*entity.DetailTransaction) error {
	query := `
		INSERT INTO detail_transactions
			(id, transaction_id, item_id, supplier_id, quantity, quantity_check,
			 quantity_difference, note, expiry_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for start := 0; start < len(details); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(details) {
			end = len(details)
		}
		batch := &pgx.Batch{}
		for _, d := range details[start:end] {
			batch.Queue(query,
				d.ID, d.TransactionID, d.ItemID, d.SupplierID, d.Quantity, d.QuantityCheck,
				d.QuantityDifference, d.Note, d.ExpiryDate, d.Status, d.CreatedAt, d.UpdatedAt,
			)
		}
		br := r.q.SendBatch(ctx, batch)
		var batchErr error
		for range details[start:end] {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = err
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = err
		}
		if batchErr != nil {
			return fmt.Errorf("create details: %w", batchErr)
		}
	}
	return nil
}

// GetByID obtiene una cabecera por código. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + trxColumns + ` FROM transactions WHERE id = $1`
	trx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return trx, nil
}

// List lista cabeceras filtrando por tipo y/o estado (vacío = todos),
// más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, trxType, status string, limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + trxColumns + ` FROM transactions WHERE 1=1`
	args := []any{}
	if trxType != "" {
		args = append(args, trxType)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var out []*entity.Transaction
	for rows.Next() {
		trx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, trx)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de una cabecera.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE transactions SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una cabecera; las líneas caen por ON DELETE CASCADE.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetDetail obtiene una línea por id. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetDetail(ctx context.Context, detailID string) (*entity.DetailTransaction, error) {
	query := `SELECT ` + detailColumns + ` FROM detail_transactions WHERE id = $1`
	d, err := scanDetail(r.q.QueryRow(ctx, query, detailID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detail: %w", err)
	}
	return d, nil
}

// ListDetails lista las líneas de una transacción en orden de creación.
func (r *TransactionRepo) ListDetails(ctx context.Context, trxID string) ([]*entity.DetailTransaction, error) {
	query := `SELECT ` + detailColumns + ` FROM detail_transactions
		WHERE transaction_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, trxID)
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	defer rows.Close()
	var out []*entity.DetailTransaction
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateDetail persiste los campos mutables de una línea.
func (r *TransactionRepo) UpdateDetail(ctx context.Context, d *entity.DetailTransaction) error {
	query := `
		UPDATE detail_transactions
		SET quantity = $2, quantity_check = $3, quantity_difference = $4,
		    note = $5, expiry_date = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Quantity, d.QuantityCheck, d.QuantityDifference, d.Note, d.ExpiryDate, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDetailStatus cambia el estado de una línea con guarda sobre el estado
// previo. Cero filas afectadas significa que otra transacción ganó la carrera
// (o la línea no existe): ErrConflict, el caller debe abortar.
func (r *TransactionRepo) UpdateDetailStatus(ctx context.Context, detailID, fromStatus, toStatus string) error {
	query := `UPDATE detail_transactions SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(ctx, query, detailID, toStatus, fromStatus)
	if err != nil {
		return fmt.Errorf("update detail status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// DeleteDetail elimina una línea.
func (r *TransactionRepo) DeleteDetail(ctx context.Context, detailID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM detail_transactions WHERE id = $1`, detailID)
	if err != nil {
		return fmt.Errorf("delete detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PendingCounts cuenta transacciones PENDING agrupadas por tipo.
func (r *TransactionRepo) PendingCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT type, COUNT(*) FROM transactions WHERE status = $1 GROUP BY type`
	rows, err := r.q.Query(ctx, query, entity.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("pending counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int, len(entity.TransactionTypes))
	for rows.Next() {
		var tp string
		var n int
		if err := rows.Scan(&tp, &n); err != nil {
			return nil, fmt.Errorf("scan pending count: %w", err)
		}
		counts[tp] = n
	}
	return counts, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.Type, &t.Status, &t.UserID, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanDetail(row pgx.Row) (*entity.DetailTransaction, error) {
	var d entity.DetailTransaction
	err := row.Scan(
		&d.ID, &d.TransactionID, &d.ItemID, &d.SupplierID, &d.Quantity,
		&d.QuantityCheck, &d.QuantityDifference, &d.Note, &d.ExpiryDate,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
