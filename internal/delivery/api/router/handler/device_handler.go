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

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
}

// DeviceHandler holds dependencies for seller device handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
	}
}

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	DeviceID string `json:"device_id" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// UpdateFCMTokenRequest represents the request body for updating FCM token
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}

// RegisterDevice handles device registration
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req RegisterDeviceRequest
	if ok, err := bind(c, &req, "device"); !ok {
		return err
	}

	device, err := h.deviceUC.RegisterDevice(c.Request().Context(), accountID, &usecase.DeviceInfo{
		FCMToken: req.FCMToken,
		DeviceID: req.DeviceID,
		Platform: entity.Platform(req.Platform),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newDeviceResponse(device), "Device registered successfully")
}

// GetDevices handles retrieving all devices of the seller
func (h *DeviceHandler) GetDevices(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	devices, err := h.deviceUC.GetDevices(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*DeviceResponse, 0, len(devices))
	for _, device := range devices {
		out = append(out, newDeviceResponse(device))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// UpdateFCMToken handles updating FCM token for a device
func (h *DeviceHandler) UpdateFCMToken(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	deviceID, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid device ID")
	}

	var req UpdateFCMTokenRequest
	if ok, err := bind(c, &req, "FCM token"); !ok {
		return err
	}

	if err := h.deviceUC.UpdateFCMToken(c.Request().Context(), accountID, deviceID, req.FCMToken); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "FCM token updated successfully")
}

// DeactivateDevice handles deactivating a device
func (h *DeviceHandler) DeactivateDevice(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	deviceID, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid device ID")
	}

	if err := h.deviceUC.DeactivateDevice(c.Request().Context(), accountID, deviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Device deactivated successfully")
}
