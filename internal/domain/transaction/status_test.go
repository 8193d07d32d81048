package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/transaction"
)

func TestCanTransition_CadenaMonotona(t *testing.T) {
	assert.NoError(t, transaction.CanTransition(entity.StatusPending, entity.StatusOrdered))
	assert.NoError(t, transaction.CanTransition(entity.StatusOrdered, entity.StatusReceived))
	assert.NoError(t, transaction.CanTransition(entity.StatusReceived, entity.StatusCompleted))
	// Se permiten saltos hacia adelante.
	assert.NoError(t, transaction.CanTransition(entity.StatusPending, entity.StatusCompleted))
}

func TestCanTransition_NoRetrocede(t *testing.T) {
	err := transaction.CanTransition(entity.StatusReceived, entity.StatusOrdered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = transaction.CanTransition(entity.StatusOrdered, entity.StatusOrdered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "quedarse en el mismo estado no es transición")
}

func TestCanTransition_CanceladoDesdeNoTerminal(t *testing.T) {
	for _, from := range []string{entity.StatusPending, entity.StatusOrdered, entity.StatusReceived} {
		assert.NoError(t, transaction.CanTransition(from, entity.StatusCancelled), from)
	}
}

func TestCanTransition_TerminalesCongelados(t *testing.T) {
	for _, from := range []string{entity.StatusCompleted, entity.StatusCancelled} {
		for _, to := range []string{entity.StatusPending, entity.StatusOrdered, entity.StatusCompleted, entity.StatusCancelled} {
			err := transaction.CanTransition(from, to)
			assert.ErrorIs(t, err, domain.ErrTerminalState, "%s → %s", from, to)
		}
	}
}

func TestPostsStock_UmbralPorTipo(t *testing.T) {
	// IN afecta stock al cruzar RECEIVED, una sola vez.
	assert.True(t, transaction.PostsStock(entity.TransactionTypeIN, entity.StatusOrdered, entity.StatusReceived))
	assert.True(t, transaction.PostsStock(entity.TransactionTypeIN, entity.StatusPending, entity.StatusCompleted))
	assert.False(t, transaction.PostsStock(entity.TransactionTypeIN, entity.StatusReceived, entity.StatusCompleted),
		"RECEIVED → COMPLETED no debe volver a afectar stock")

	// OUT y CHECK solo al completar.
	assert.False(t, transaction.PostsStock(entity.TransactionTypeOUT, entity.StatusPending, entity.StatusOrdered))
	assert.True(t, transaction.PostsStock(entity.TransactionTypeOUT, entity.StatusPending, entity.StatusCompleted))
	assert.True(t, transaction.PostsStock(entity.TransactionTypeCHECK, entity.StatusPending, entity.StatusCompleted))
}

func TestParentStatus_MenosAvanzado(t *testing.T) {
	details := []*entity.DetailTransaction{
		{Status: entity.StatusCompleted},
		{Status: entity.StatusOrdered},
		{Status: entity.StatusCancelled}, // ignorada
	}
	assert.Equal(t, entity.StatusOrdered, transaction.ParentStatus(entity.StatusPending, details))
}

func TestParentStatus_TodasCanceladas(t *testing.T) {
	details := []*entity.DetailTransaction{
		{Status: entity.StatusCancelled},
		{Status: entity.StatusCancelled},
	}
	assert.Equal(t, entity.StatusCancelled, transaction.ParentStatus(entity.StatusPending, details))
}

func TestParentStatus_SinLineasConserva(t *testing.T) {
	assert.Equal(t, entity.StatusPending, transaction.ParentStatus(entity.StatusPending, nil))
}
