package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/combustible-api/internal/application/dto"
	"github.com/jhoicas/combustible-api/internal/domain"
)

// failStatus monta un handler que termina en fail(err) y devuelve la
// respuesta mapeada.
func failStatus(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return fail(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFail_MapeaSentinelasACodigosHTTP(t *testing.T) {
	casos := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrInsufficientBalance, http.StatusBadRequest, "SALDO_INSUFICIENTE"},
		{domain.ErrInsufficientInventory, http.StatusBadRequest, "INVENTARIO_INSUFICIENTE"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrServiceBlocked, http.StatusServiceUnavailable, "SERVICIO_BLOQUEADO"},
	}
	for _, caso := range casos {
		status, body := failStatus(t, caso.err)
		assert.Equal(t, caso.status, status, "error %v", caso.err)
		assert.Equal(t, caso.code, body.Code, "error %v", caso.err)
	}
}

// Los errores transitorios de almacenamiento son reintentables: 503 con un
// código distinguible, nunca el 500 genérico.
func TestFail_TransitorioEs503Reintentable(t *testing.T) {
	err := domain.Transient("insert agendamiento", errors.New("conexión caída"))

	status, body := failStatus(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "TRANSIENT", body.Code)
}

func TestFail_ErrorDesconocidoEs500(t *testing.T) {
	status, body := failStatus(t, errors.New("algo inesperado"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
}
