package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/pkg/logger"
)

func serveWithLogger(t *testing.T, handlerErr error) (int, dto.ErrorResponse, string) {
	t.Helper()
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(logger.NewWithWriter(&buf, "info")))
	app.Get("/x", func(c *fiber.Ctx) error { return writeError(c, handlerErr) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body, buf.String()
}

func TestWriteError_EntradaInvalidaMensajeFijoDetalleEnLog(t *testing.T) {
	status, body, logs := serveWithLogger(t, fmt.Errorf("carrito vacío: %w", domain.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, MsgInvalidInput, body.Message)
	assert.NotContains(t, body.Message, "carrito")
	assert.Contains(t, logs, "carrito vacío")
	assert.Contains(t, logs, `"level":"warn"`)
}

func TestWriteError_ConflictoMensajeFijo(t *testing.T) {
	status, body, logs := serveWithLogger(t, fmt.Errorf("paso 1: %w", domain.ErrInvalidTransition))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, msgConflict, body.Message)
	assert.Contains(t, logs, "paso 1")
}

func TestWriteError_InternoConservaCuerpoJSON(t *testing.T) {
	status, body, logs := serveWithLogger(t, fmt.Errorf("insert order: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, msgInternal, body.Message)
	assert.Contains(t, logs, "connection reset")
	assert.Contains(t, logs, `"component":"http"`)
}
