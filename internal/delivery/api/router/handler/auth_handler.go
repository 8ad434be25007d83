package handler

import (
	"net/http"

	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/response"
	"rescue/internal/domain/entity"
	"rescue/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthHandler serves registration, login and token refresh.
type AuthHandler struct {
	authUC usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{authUC: params.AuthUC}
}

// RegisterRequest is the registration body. Role defaults to buyer.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Role            string `json:"role"`
	StoreName       string `json:"store_name"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the token refresh body.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register creates a buyer or seller account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if ok, err := bind(c, &req, "registration"); !ok {
		return err
	}

	account, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Address:         req.Address,
		Role:            entity.Role(req.Role),
		StoreName:       req.StoreName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountResponse(account), "Registration successful")
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bind(c, &req, "login"); !ok {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(out), "Login successful")
}

// RefreshToken issues a new token pair from a refresh token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if ok, err := bind(c, &req, "refresh token"); !ok {
		return err
	}

	out, err := h.authUC.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(out), "Token refreshed successfully")
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	account, err := h.authUC.Me(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), "")
}
