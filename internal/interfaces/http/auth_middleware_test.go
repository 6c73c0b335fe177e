package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	apphttp "github.com/jhoicas/booking-dashboard/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/booking-dashboard/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "booking-dashboard-test"
	testExpMin    = 60
)

func sessionToken(t *testing.T, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, expMinutes)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// buildAuthApp aplicación mínima con AuthMiddleware y un handler que devuelve el usuario.
func buildAuthApp(secret string) *fiber.App {
	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	}
	app.Get("/api/me", apphttp.AuthMiddleware(secret), handler)
	app.Get("/dashboard/me", apphttp.AuthMiddleware(secret), handler)
	return app
}

func TestAuthMiddleware_SinSecretNoExigeToken(t *testing.T) {
	resp, err := buildAuthApp("").Test(httptest.NewRequest(http.MethodGet, "/api/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_BearerValido(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, testExpMin))
	resp, err := buildAuthApp(testJWTSecret).Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_CookieDeSesion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: sessionToken(t, testExpMin)})
	resp, err := buildAuthApp(testJWTSecret).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"formato incorrecto", "Token abc", "INVALID_TOKEN"},
		{"bearer vacío", "Bearer   ", "MISSING_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := buildAuthApp(testJWTSecret).Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body dto.ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, -1))
	resp, err := buildAuthApp(testJWTSecret).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_DashboardRespondeTexto(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/me", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := buildAuthApp(testJWTSecret).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "401 Unauthorized", readBody(t, resp))
}

func TestRouter_APIProtegidaConSecret(t *testing.T) {
	env := newTestEnv(t, envOptions{jwtSecret: testJWTSecret})

	resp := env.do(t, jsonRequest(http.MethodGet, "/api/customers", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := jsonRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, testExpMin))
	resp = env.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
