package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// DetailInput es una línea propuesta para crear o agregar a una transacción.
type DetailInput struct {
	ItemID             string
	SupplierID         *string
	Quantity           int64
	QuantityCheck      *int64
	QuantityDifference *int64
	Note               string
	ExpiryDate         *time.Time
}

// Violation es una infracción de regla de negocio, dirigida a una línea y campo.
type Violation struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las infracciones de una petición. Se devuelve
// al caller con mensajes por campo; nunca se loggea como fallo del servidor.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("validación: línea %d, %s: %s", v.Line, v.Field, v.Message)
	}
	return fmt.Sprintf("validación: %d infracciones", len(e.Violations))
}

// Catalog es la vista de items que necesita el validador (id → item).
type Catalog map[string]*entity.Item

// Validate aplica las reglas por tipo a todas las líneas propuestas y recolecta
// TODAS las infracciones (no fail-fast). Lista vacía ⇒ válido. Sin efectos.
//
//	cualquiera  el item debe existir en el catálogo
//	IN          supplier_id obligatorio
//	OUT         quantity <= stock actual del item
//	CHECK       quantity == stock actual (es la foto del sistema)
//	CHECK       quantity_difference == quantity_check - quantity
//	OUT, CHECK  note obligatoria (no vacía tras trim)
func Validate(trxType string, details []DetailInput, catalog Catalog) []Violation {
	var out []Violation
	add := func(line int, field, msg string) {
		out = append(out, Violation{Line: line, Field: field, Message: msg})
	}

	for i, d := range details {
		item, exists := catalog[d.ItemID]
		if !exists || item == nil {
			add(i, "item_id", "el item no existe")
		}
		if d.Quantity < 0 {
			add(i, "quantity", "la cantidad no puede ser negativa")
		}

		switch trxType {
		case entity.TransactionTypeIN:
			if d.SupplierID == nil || strings.TrimSpace(*d.SupplierID) == "" {
				add(i, "supplier_id", "el proveedor es obligatorio en entradas")
			}
			if d.Quantity == 0 {
				add(i, "quantity", "la cantidad debe ser mayor que cero")
			}

		case entity.TransactionTypeOUT:
			if d.Quantity == 0 {
				add(i, "quantity", "la cantidad debe ser mayor que cero")
			}
			if exists && d.Quantity > item.StockQuantity {
				add(i, "quantity", fmt.Sprintf("stock insuficiente: solicitado %d, disponible %d", d.Quantity, item.StockQuantity))
			}
			if strings.TrimSpace(d.Note) == "" {
				add(i, "note", "la nota es obligatoria en salidas")
			}

		case entity.TransactionTypeCHECK:
			if exists && d.Quantity != item.StockQuantity {
				add(i, "quantity", fmt.Sprintf("la cantidad de sistema debe ser %d (stock actual)", item.StockQuantity))
			}
			if d.QuantityCheck == nil {
				add(i, "quantity_check", "la cantidad física es obligatoria en conteos")
			} else if d.QuantityDifference != nil && *d.QuantityDifference != *d.QuantityCheck-d.Quantity {
				add(i, "quantity_difference", "la diferencia debe ser cantidad física menos cantidad de sistema")
			}
			if strings.TrimSpace(d.Note) == "" {
				add(i, "note", "la nota es obligatoria en conteos")
			}
		}
	}
	return out
}

// ValidateCheckUpdate aplica las reglas del camino de actualización de una
// línea IN al registrar el conteo de recepción:
//
//	quantity_check ∈ [-1, quantity]; -1 significa "aún no contado"
//	si hay faltante (físico < sistema), note obligatoria
func ValidateCheckUpdate(quantity int64, quantityCheck int64, note string) []Violation {
	var out []Violation
	if quantityCheck < entity.QuantityCheckUnset || quantityCheck > quantity {
		out = append(out, Violation{
			Line:    0,
			Field:   "quantity_check",
			Message: fmt.Sprintf("la cantidad física debe estar entre -1 y %d", quantity),
		})
	}
	if quantityCheck != entity.QuantityCheckUnset && quantityCheck < quantity && strings.TrimSpace(note) == "" {
		out = append(out, Violation{
			Line:    0,
			Field:   "note",
			Message: "la nota es obligatoria cuando hay unidades faltantes o dañadas",
		})
	}
	return out
}
