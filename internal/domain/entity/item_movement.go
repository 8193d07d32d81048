package entity

import "time"

// ItemMovement es un registro inmutable del ledger de stock: cada cambio de
// cantidad con su causa. La suma de deltas aplicados de un item siempre
// reconcilia con Item.StockQuantity (invariante central del ledger).
type ItemMovement struct {
	ID            string // uuid
	TransactionID string
	ItemID        string
	Type          string // IN | OUT | CHECK
	Delta         int64  // positivo entrada, negativo salida/merma
	ExpiryDate    *time.Time
	CreatedAt     time.Time
}
