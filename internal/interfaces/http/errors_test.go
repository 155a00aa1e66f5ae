package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/printstock/internal/domain"
)

func respondWith(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, reqErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	return resp.StatusCode, string(body)
}

func TestRespondError_UnknownErrorStaysGeneric(t *testing.T) {
	status, body := respondWith(t, errors.New("pq: password authentication failed for user app"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "internal error")
	assert.NotContains(t, body, "password", "internal details must not reach the client")
}

func TestRespondError_InsufficientStockDetail(t *testing.T) {
	status, body := respondWith(t, &domain.InsufficientStockError{
		Scope: domain.ScopeBuilding, Available: 1, Requested: 4,
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "insufficient building stock: available 1, requested 4")
}

func TestRespondError_SentinelMapping(t *testing.T) {
	cases := map[error]int{
		domain.ErrInvalidInput:          fiber.StatusBadRequest,
		domain.ErrUnauthorized:          fiber.StatusUnauthorized,
		domain.ErrForbidden:             fiber.StatusForbidden,
		domain.ErrNotFound:              fiber.StatusNotFound,
		domain.ErrDuplicate:             fiber.StatusConflict,
		domain.ErrProtected:             fiber.StatusConflict,
		domain.ErrIncompatibleCartridge: fiber.StatusConflict,
		domain.ErrConcurrencyConflict:   fiber.StatusConflict,
	}
	for err, want := range cases {
		status, _ := respondWith(t, err)
		assert.Equal(t, want, status, "error %v", err)
	}
}
