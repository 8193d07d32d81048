package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeIN    = "IN"    // entrada de mercancía (compra a proveedor)
	TransactionTypeOUT   = "OUT"   // salida a cocina
	TransactionTypeCHECK = "CHECK" // conteo físico / reconciliación
)

// Estados del ciclo de vida. COMPLETED y CANCELLED son terminales.
const (
	StatusPending   = "PENDING"
	StatusOrdered   = "ORDERED"
	StatusReceived  = "RECEIVED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// TransactionTypes lista los tipos válidos, en el orden usado por dashboards.
var TransactionTypes = []string{TransactionTypeIN, TransactionTypeOUT, TransactionTypeCHECK}

// Transaction es la cabecera de una transacción de inventario.
// El ID es el código secuencial por tipo (TRX-IN-0001, TRX-OUT-0001, ...).
type Transaction struct {
	ID        string // TRX-{TYPE}-0001
	Type      string // IN | OUT | CHECK
	Status    string
	UserID    string // usuario que la creó
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Details []*DetailTransaction // cargados bajo demanda
}

// IsTerminal indica si la transacción ya no admite mutaciones.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// ValidTransactionType valida el tipo contra la lista conocida.
func ValidTransactionType(tp string) bool {
	switch tp {
	case TransactionTypeIN, TransactionTypeOUT, TransactionTypeCHECK:
		return true
	}
	return false
}
