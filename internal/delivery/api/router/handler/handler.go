// Package handler contains the HTTP handlers for the marketplace API.
package handler

import (
	"net/http"

	"rescue/internal/delivery/api/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// bind decodes and validates the request body. On failure it writes the 400 response itself,
// so callers return the second value as is when ok is false.
func bind(c echo.Context, req any, what string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", "Invalid "+what+" input")
	}

	if err := c.Validate(req); err != nil {
		return false, response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Invalid input data", err.Error())
	}

	return true, nil
}

func paramUUID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))

	return id, err == nil
}
