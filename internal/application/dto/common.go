package dto

import "github.com/jhoicas/resto-inventario/internal/domain/transaction"

// Envelope es la respuesta uniforme de la API: {ok, data | message}.
type Envelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	// Violations solo se llena en errores de validación (por línea y campo).
	Violations []transaction.Violation `json:"violations,omitempty"`
}

// OK envuelve datos de éxito.
func OK(data any) Envelope {
	return Envelope{OK: true, Data: data}
}

// Fail construye una respuesta de error con código y mensaje corto.
func Fail(code, message string) Envelope {
	return Envelope{OK: false, Code: code, Message: message}
}

// FailValidation construye la respuesta de error de validación por campos.
func FailValidation(violations []transaction.Violation) Envelope {
	return Envelope{OK: false, Code: "VALIDATION", Message: "datos inválidos", Violations: violations}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
