package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain"
	rules "github.com/jhoicas/resto-inventario/internal/domain/transaction"
	"github.com/jhoicas/resto-inventario/pkg/logger"
)

// errLog recibe los errores no clasificados antes de responder 500. Router lo
// reemplaza por el logger de la aplicación.
var errLog = logger.New(logger.Config{Level: "error"})

func setErrorLogger(l *logger.Logger) {
	if l != nil {
		errLog = l
	}
}

// respondError traduce los errores de dominio al status HTTP y al envelope
// uniforme {ok:false, code, message}. Todo error no reconocido es un 500 con
// mensaje genérico; el detalle queda solo en logs.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *rules.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(vErr.Violations))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHENTICATED", "credenciales inválidas"))
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", "operación no permitida para este rol"))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "recurso no encontrado"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("INSUFFICIENT_STOCK", "stock insuficiente"))
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("USERNAME_TAKEN", "el username ya existe"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("DUPLICATE", "el nombre ya existe"))
	case errors.Is(err, domain.ErrTerminalState):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("TERMINAL_STATE", "la transacción está en estado terminal"))
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("INVALID_TRANSITION", "transición de estado no permitida"))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CONFLICT", "la operación entra en conflicto con el estado actual"))
	}

	errLog.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno no clasificado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno"))
}
