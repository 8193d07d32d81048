// Package transaction contiene las reglas de negocio puras del ciclo de vida
// de transacciones: máquina de estados y validador de líneas de detalle.
// Sin efectos secundarios ni dependencias de infraestructura.
package transaction

import (
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// stage asigna a cada estado su posición en la cadena monótona
// PENDING → ORDERED → RECEIVED → COMPLETED. CANCELLED queda fuera (-1).
var stage = map[string]int{
	entity.StatusPending:   0,
	entity.StatusOrdered:   1,
	entity.StatusReceived:  2,
	entity.StatusCompleted: 3,
}

// Stage devuelve la posición del estado en la cadena, -1 para CANCELLED o desconocidos.
func Stage(status string) int {
	s, ok := stage[status]
	if !ok {
		return -1
	}
	return s
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	return status == entity.StatusCompleted || status == entity.StatusCancelled
}

// CanTransition valida una transición de estado. Las transiciones son
// monótonas hacia adelante (se permiten saltos, ej. PENDING → COMPLETED);
// CANCELLED es alcanzable desde cualquier estado no terminal.
func CanTransition(from, to string) error {
	if IsTerminal(from) {
		return domain.ErrTerminalState
	}
	if to == entity.StatusCancelled {
		return nil
	}
	fromStage, toStage := Stage(from), Stage(to)
	if fromStage < 0 || toStage < 0 {
		return domain.ErrInvalidTransition
	}
	if toStage <= fromStage {
		return domain.ErrInvalidTransition
	}
	return nil
}

// PostsStock indica si al entrar a `to` desde `from` la línea debe afectar el
// stock: IN lo hace al cruzar RECEIVED; OUT y CHECK al cruzar COMPLETED.
// El cruce se evalúa una sola vez (from antes del umbral, to en o después).
func PostsStock(trxType, from, to string) bool {
	threshold := stage[entity.StatusCompleted]
	if trxType == entity.TransactionTypeIN {
		threshold = stage[entity.StatusReceived]
	}
	return Stage(from) < threshold && Stage(to) >= threshold
}

// ParentStatus deriva el estado de la cabecera a partir de sus líneas: el
// estado menos avanzado entre las no canceladas; si todas están canceladas,
// CANCELLED. Sin líneas conserva el estado actual.
func ParentStatus(current string, details []*entity.DetailTransaction) string {
	if len(details) == 0 {
		return current
	}
	min := -1
	for _, d := range details {
		if d.Status == entity.StatusCancelled {
			continue
		}
		s := Stage(d.Status)
		if min == -1 || s < min {
			min = s
		}
	}
	if min == -1 {
		return entity.StatusCancelled
	}
	for status, s := range stage {
		if s == min {
			return status
		}
	}
	return current
}
