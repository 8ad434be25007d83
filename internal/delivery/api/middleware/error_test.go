package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"rescue/internal/delivery/api/response"
	domainerrors "rescue/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/orders", nil), rec)

	m.HandleHTTPError(err, c)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	t.Run("domain error keeps its code and details", func(t *testing.T) {
		rec, body := handle(t, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("status is unknown"), "list orders"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "Invalid input data", body.Message)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Equal(t, "status is unknown", body.Error.Details)
	})

	t.Run("details are hidden on server errors", func(t *testing.T) {
		rec, body := handle(t, domainerrors.ErrTransactionFailed.WithDetails("deadlock detected"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "TRANSACTION_FAILED", body.Error.Code)
		assert.Empty(t, body.Error.Details)
	})

	t.Run("echo errors", func(t *testing.T) {
		rec, body := handle(t, echo.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "HTTP_ERROR", body.Error.Code)
	})

	t.Run("unknown errors are generic", func(t *testing.T) {
		rec, body := handle(t, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Message, "connection refused")
	})
}
