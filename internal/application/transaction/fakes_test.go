package transaction_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	apptrx "github.com/jhoicas/resto-inventario/internal/application/transaction"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

// memStore es el almacén en memoria compartido por los fakes. El runner de
// transacciones toma una copia antes de fn y la restaura si fn falla, para
// emular Commit/Rollback.
type memStore struct {
	items     map[string]*entity.Item
	trxs      map[string]*entity.Transaction
	details   map[string]*entity.DetailTransaction
	movements []*entity.ItemMovement
	suppliers map[string]*entity.Supplier
	units     map[string]*entity.Unit
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.Item{},
		trxs:      map[string]*entity.Transaction{},
		details:   map[string]*entity.DetailTransaction{},
		suppliers: map[string]*entity.Supplier{},
		units:     map[string]*entity.Unit{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.trxs {
		cp := *v
		c.trxs[k] = &cp
	}
	for k, v := range s.details {
		cp := *v
		c.details[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	for k, v := range s.units {
		cp := *v
		c.units[k] = &cp
	}
	c.movements = append([]*entity.ItemMovement(nil), s.movements...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.items = from.items
	s.trxs = from.trxs
	s.details = from.details
	s.movements = from.movements
	s.suppliers = from.suppliers
	s.units = from.units
}

// ── Fakes de repositorios ─────────────────────────────────────────────────────

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) NextCode(context.Context) (string, error) {
	max := 0
	for id := range r.s.items {
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "BB-")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("BB-%04d", max+1), nil
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Item, error) {
	out := map[string]*entity.Item{}
	for _, id := range ids {
		if item, ok := r.s.items[id]; ok {
			cp := *item
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) List(context.Context, int, int) ([]*entity.Item, error) { return nil, nil }

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) UpdateStock(_ context.Context, id string, qty int64) error {
	item, ok := r.s.items[id]
	if !ok {
		return fmt.Errorf("item %s no existe", id)
	}
	item.StockQuantity = qty
	item.UpdatedAt = time.Now()
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.s.items, id)
	return nil
}

type fakeTrxRepo struct{ s *memStore }

func (r *fakeTrxRepo) NextCode(_ context.Context, trxType string) (string, error) {
	prefix := "TRX-" + trxType + "-"
	max := 0
	for id := range r.s.trxs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(id, prefix)); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

func (r *fakeTrxRepo) Create(_ context.Context, trx *entity.Transaction) error {
	cp := *trx
	cp.Details = nil
	r.s.trxs[trx.ID] = &cp
	return nil
}

func (r *fakeTrxRepo) CreateDetails(_ context.Context, details []*entity.DetailTransaction) error {
	for _, d := range details {
		cp := *d
		r.s.details[d.ID] = &cp
	}
	return nil
}

func (r *fakeTrxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	trx, ok := r.s.trxs[id]
	if !ok {
		return nil, nil
	}
	cp := *trx
	return &cp, nil
}

func (r *fakeTrxRepo) List(_ context.Context, trxType, status string, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.trxs {
		if trxType != "" && t.Type != trxType {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTrxRepo) UpdateStatus(_ context.Context, id, status string) error {
	trx, ok := r.s.trxs[id]
	if !ok {
		return fmt.Errorf("trx %s no existe", id)
	}
	trx.Status = status
	return nil
}

func (r *fakeTrxRepo) Delete(_ context.Context, id string) error {
	delete(r.s.trxs, id)
	for did, d := range r.s.details {
		if d.TransactionID == id {
			delete(r.s.details, did)
		}
	}
	return nil
}

func (r *fakeTrxRepo) GetDetail(_ context.Context, detailID string) (*entity.DetailTransaction, error) {
	d, ok := r.s.details[detailID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeTrxRepo) ListDetails(_ context.Context, trxID string) ([]*entity.DetailTransaction, error) {
	var out []*entity.DetailTransaction
	for _, d := range r.s.details {
		if d.TransactionID == trxID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTrxRepo) UpdateDetail(_ context.Context, d *entity.DetailTransaction) error {
	cp := *d
	r.s.details[d.ID] = &cp
	return nil
}

func (r *fakeTrxRepo) UpdateDetailStatus(_ context.Context, detailID, fromStatus, toStatus string) error {
	d, ok := r.s.details[detailID]
	if !ok || d.Status != fromStatus {
		return domain.ErrConflict
	}
	d.Status = toStatus
	return nil
}

func (r *fakeTrxRepo) DeleteDetail(_ context.Context, detailID string) error {
	delete(r.s.details, detailID)
	return nil
}

func (r *fakeTrxRepo) PendingCounts(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, t := range r.s.trxs {
		if t.Status == entity.StatusPending {
			out[t.Type]++
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.ItemMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, itemID string, _, _ *time.Time, _, _ int) ([]*entity.ItemMovement, error) {
	var out []*entity.ItemMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByTransaction(_ context.Context, trxID string) ([]*entity.ItemMovement, error) {
	var out []*entity.ItemMovement
	for _, m := range r.s.movements {
		if m.TransactionID == trxID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Aggregate(_ context.Context, itemID string, from, to time.Time) (repository.MovementAggregate, error) {
	var agg repository.MovementAggregate
	item := r.s.items[itemID]
	if item == nil {
		return agg, nil
	}
	var afterStart, afterEnd int64
	for _, m := range r.s.movements {
		if m.ItemID != itemID {
			continue
		}
		if m.CreatedAt.After(from) {
			afterStart += m.Delta
		}
		if m.CreatedAt.After(to) {
			afterEnd += m.Delta
		}
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			if m.Delta > 0 {
				agg.TotalIn += m.Delta
			} else {
				agg.TotalOut += -m.Delta
			}
		}
	}
	agg.NetMovement = agg.TotalIn - agg.TotalOut
	agg.StockAtPeriodStart = item.StockQuantity - afterStart
	agg.StockAtPeriodEnd = item.StockQuantity - afterEnd
	return agg, nil
}

func (r *fakeMovementRepo) SumDeltas(_ context.Context, itemID string) (int64, error) {
	var sum int64
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			sum += m.Delta
		}
	}
	return sum, nil
}

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.suppliers[sp.ID] = sp
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.s.suppliers[id], nil
}

func (r *fakeSupplierRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Supplier, error) {
	out := map[string]*entity.Supplier{}
	for _, id := range ids {
		if sp, ok := r.s.suppliers[id]; ok {
			out[id] = sp
		}
	}
	return out, nil
}

func (r *fakeSupplierRepo) List(context.Context, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Update(_ context.Context, sp *entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Delete(_ context.Context, id string) error           { return nil }

type fakeUnitRepo struct{ s *memStore }

func (r *fakeUnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.s.units[u.ID] = u
	return nil
}
func (r *fakeUnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	return r.s.units[id], nil
}
func (r *fakeUnitRepo) List(context.Context, int, int) ([]*entity.Unit, error) { return nil, nil }
func (r *fakeUnitRepo) Update(_ context.Context, u *entity.Unit) error         { return nil }
func (r *fakeUnitRepo) Delete(_ context.Context, id string) error              { return nil }

// fakeTxRunner emula la atomicidad: clona el store antes de fn y lo restaura
// completo si fn devuelve error. before (opcional) corre justo antes de fn,
// para intercalar una escritura rival entre la lectura del caso de uso y su
// transacción.
type fakeTxRunner struct {
	s      *memStore
	before func()
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	snapshot := r.s.clone()
	err := fn(repository.TxRepos{
		Transactions: &fakeTrxRepo{s: r.s},
		Items:        &fakeItemRepo{s: r.s},
		Movements:    &fakeMovementRepo{s: r.s},
	})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// fakeNotifier acumula los avisos despachados.
type fakeNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	SupplierID   string
	SupplierName string
	Items        []apptrx.PurchaseItem
}

func (n *fakeNotifier) Notify(_ context.Context, supplierID, supplierName string, items []apptrx.PurchaseItem) error {
	n.calls = append(n.calls, notifyCall{SupplierID: supplierID, SupplierName: supplierName, Items: items})
	return nil
}
