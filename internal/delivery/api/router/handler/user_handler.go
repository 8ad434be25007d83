package handler

import (
	"context"
	"net/http"

	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/response"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
}

// UserHandler serves admin account moderation.
type UserHandler struct {
	accountUC usecase.AccountUsecase
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{accountUC: params.AccountUC}
}

// ListUsers lists accounts, optionally filtered by ?role= and ?status=.
func (h *UserHandler) ListUsers(c echo.Context) error {
	filter := repository.AccountFilter{
		Role:   entity.Role(c.QueryParam("role")),
		Status: entity.AccountStatus(c.QueryParam("status")),
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		return response.BadRequest(c, "VALIDATION_FAILED", "Unknown role filter")
	}

	accounts, err := h.accountUC.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponses(accounts), "")
}

// DeleteUser removes an account and its profile.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	if err := h.accountUC.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// VerifyUser marks a seller as verified.
func (h *UserHandler) VerifyUser(c echo.Context) error {
	return h.moderate(c, h.accountUC.VerifyUser, "User verified successfully")
}

// BlockUser blocks an account from logging in.
func (h *UserHandler) BlockUser(c echo.Context) error {
	return h.moderate(c, h.accountUC.BlockUser, "User blocked successfully")
}

func (h *UserHandler) moderate(c echo.Context, action func(context.Context, usecase.Actor, uuid.UUID) (*entity.Account, error), message string) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	account, err := action(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), message)
}
