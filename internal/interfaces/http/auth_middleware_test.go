package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/campus-it/printstock/internal/interfaces/http"
	"github.com/campus-it/printstock/pkg/jwt"
)

const testSecret = "test-secret-at-least-32-characters-long"

// ============================================================
// Helpers
// ============================================================

func newTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apihttp.AuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apihttp.GetUserID(c),
			"role":    apihttp.GetRole(c),
		})
	})
	app.Post("/admin-only", apihttp.AuthMiddleware(secret), apihttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "printstock-test", 5)
	require.NoError(t, err)
	return token
}

// ============================================================
// AuthMiddleware
// ============================================================

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newTestApp(testSecret)

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := newTestApp(testSecret)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer  "} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newTestApp(testSecret)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := newTestApp("a-completely-different-secret-value")

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-1", "staff"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidTokenSetsLocals(t *testing.T) {
	app := newTestApp(testSecret)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-42", "staff"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ============================================================
// RequireAdmin
// ============================================================

func TestRequireAdmin_AdminPasses(t *testing.T) {
	app := newTestApp(testSecret)

	req := httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-1", "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_StaffForbidden(t *testing.T) {
	app := newTestApp(testSecret)

	req := httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-1", "staff"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ============================================================
// GatewayMiddleware
// ============================================================

func newGatewayApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/sso", apihttp.GatewayMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestGatewayMiddleware_MatchingSecret(t *testing.T) {
	app := newGatewayApp("shared-gateway-secret")

	req := httptest.NewRequest("POST", "/sso", nil)
	req.Header.Set(apihttp.HeaderGatewaySecret, "shared-gateway-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGatewayMiddleware_WrongSecret(t *testing.T) {
	app := newGatewayApp("shared-gateway-secret")

	req := httptest.NewRequest("POST", "/sso", nil)
	req.Header.Set(apihttp.HeaderGatewaySecret, "guess")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGatewayMiddleware_EmptyConfiguredSecretRejectsAll(t *testing.T) {
	app := newGatewayApp("")

	req := httptest.NewRequest("POST", "/sso", nil)
	req.Header.Set(apihttp.HeaderGatewaySecret, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"an unconfigured secret must close the SSO callback, not open it")
}

// ============================================================
// JWT round trip
// ============================================================

func TestJWT_GenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u-7", "admin", "printstock", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", userID)
	assert.Equal(t, "admin", role)
}

func TestJWT_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u-7", "staff", "printstock", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestJWT_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "u-7", "staff", "printstock", 60)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "whatever")
	assert.Error(t, err)
}
