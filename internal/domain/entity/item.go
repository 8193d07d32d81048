package entity

import "time"

// Estados de stock para reportes.
const (
	StockStatusNormal = "NORMAL"
	StockStatusLow    = "LOW_STOCK"
)

// Item representa una materia prima del restaurante.
// El ID es el código secuencial legible (BB-0001, BB-0002, ...).
// StockQuantity solo se muta a través del Stock Ledger, nunca directo.
type Item struct {
	ID            string // BB-0001
	Name          string // único
	UnitID        string
	CategoryID    string
	StockQuantity int64 // >= 0, garantizado por el ledger
	MinimumStock  int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el item está en o por debajo del umbral mínimo.
func (i *Item) IsLowStock() bool {
	return i.StockQuantity <= i.MinimumStock
}
