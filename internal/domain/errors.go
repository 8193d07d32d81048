package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso devuelven
// estos centinelas; los handlers HTTP los traducen a códigos de respuesta.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTerminalState      = errors.New("la transacción está en estado terminal")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrMovementAlreadySet = errors.New("la línea ya afectó el stock")
)
