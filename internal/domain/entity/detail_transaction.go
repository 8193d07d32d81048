package entity

import "time"

// QuantityCheckUnset es el centinela "aún no contado" para QuantityCheck en
// transacciones IN. El rango válido de QuantityCheck es [-1, Quantity].
const QuantityCheckUnset int64 = -1

// DetailTransaction es una línea de una transacción: un item con su cantidad.
// Quantity es la cantidad de sistema (solicitada); QuantityCheck la cantidad
// física recibida/contada; QuantityDifference siempre = check - sistema cuando
// ambos existen (restricción aritmética, no un campo de conveniencia).
type DetailTransaction struct {
	ID                 string // uuid
	TransactionID      string
	ItemID             string
	SupplierID         *string // obligatorio cuando el padre es IN
	Quantity           int64   // cantidad de sistema
	QuantityCheck      *int64  // cantidad física, nil si no aplica
	QuantityDifference *int64  // derivado: check - sistema
	Note               string  // obligatorio en OUT/CHECK y en IN con faltante
	ExpiryDate         *time.Time
	Status             string // espejo del estado del padre
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal indica si la línea ya no admite mutaciones.
func (d *DetailTransaction) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusCancelled
}

// Checked indica si la línea ya tiene conteo físico registrado.
func (d *DetailTransaction) Checked() bool {
	return d.QuantityCheck != nil && *d.QuantityCheck != QuantityCheckUnset
}

// ReconciledQuantity devuelve la cantidad a aplicar al stock: la física si
// existe, si no la de sistema.
func (d *DetailTransaction) ReconciledQuantity() int64 {
	if d.Checked() {
		return *d.QuantityCheck
	}
	return d.Quantity
}
