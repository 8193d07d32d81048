package http

import (
	"bytes"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests respondError — mapeo de errores y logging del fallback 500
// ──────────────────────────────────────────────────────────────────────────────

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

// Un error no clasificado debe responder 500 con mensaje genérico y dejar el
// detalle en el log, no en el body.
func TestRespondError_ErrorNoClasificado_Loggea500(t *testing.T) {
	var buf bytes.Buffer
	setErrorLogger(logger.New(logger.Config{Level: "error", Writer: &buf}))

	app := errorApp(errors.New("falla de disco en el pool"))
	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
	assert.NotContains(t, string(body), "falla de disco",
		"el detalle del error no debe filtrarse al cliente")

	logLine := buf.String()
	assert.Contains(t, logLine, "falla de disco en el pool",
		"el error original debe quedar en el log")
	assert.Contains(t, logLine, "/boom", "el log debe incluir el path de la petición")
}

// Los errores de dominio clasificados no pasan por el logger de fallback.
func TestRespondError_ErrorClasificado_NoLoggea(t *testing.T) {
	var buf bytes.Buffer
	setErrorLogger(logger.New(logger.Config{Level: "error", Writer: &buf}))

	app := errorApp(domain.ErrNotFound)
	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	assert.Empty(t, buf.String(), "un 404 de dominio no debe generar log de error")
}
