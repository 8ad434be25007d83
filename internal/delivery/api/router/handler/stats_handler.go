package handler

import (
	"net/http"

	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/response"
	"rescue/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StatsHandlerParams holds dependencies for StatsHandler, injected by Fx.
type StatsHandlerParams struct {
	fx.In

	StatsUC usecase.StatsUsecase
}

// StatsHandler serves the admin and seller dashboards.
type StatsHandler struct {
	statsUC usecase.StatsUsecase
}

// NewStatsHandler is the constructor for StatsHandler.
func NewStatsHandler(params StatsHandlerParams) *StatsHandler {
	return &StatsHandler{statsUC: params.StatsUC}
}

// PlatformStats returns the admin dashboard.
func (h *StatsHandler) PlatformStats(c echo.Context) error {
	stats, err := h.statsUC.PlatformStats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPlatformStatsResponse(stats), "")
}

// SellerStats returns the dashboard of the authenticated seller.
func (h *StatsHandler) SellerStats(c echo.Context) error {
	sellerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	stats, err := h.statsUC.SellerStats(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newSellerStatsResponse(stats), "")
}
