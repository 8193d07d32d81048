package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	apphttp "github.com/jhoicas/resto-inventario/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Router — rutas restringidas a ADMIN
// ──────────────────────────────────────────────────────────────────────────────

// Las rutas de eliminación y el registro de usuarios exigen rol ADMIN en el
// router. RequireRole corta antes del handler, por lo que aquí basta con los
// middlewares: un token STAFF debe recibir 403 sin tocar el caso de uso.
func TestRouter_RutasAdmin_RechazanStaff(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	adminRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodDelete, "/api/items/it-1"},
		{http.MethodDelete, "/api/suppliers/sup-1"},
		{http.MethodDelete, "/api/units/un-1"},
		{http.MethodDelete, "/api/categories/cat-1"},
		{http.MethodDelete, "/api/transactions/trx-1"},
		{http.MethodDelete, "/api/details/det-1"},
	}

	token := tokenForRole(t, entity.RoleStaff)
	for _, rt := range adminRoutes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"%s %s debe rechazar a STAFF con 403", rt.method, rt.path)
	}
}
