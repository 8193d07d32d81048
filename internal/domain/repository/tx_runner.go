package repository

import "context"

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Transactions TransactionRepository
	Items        ItemRepository
	Movements    ItemMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: todas las escrituras de fn hacen
// Commit juntas o Rollback juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
