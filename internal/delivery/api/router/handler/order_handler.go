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

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
}

// OrderHandler serves checkout and the order lifecycle.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{orderUC: params.OrderUC}
}

// CheckoutRequest selects the simulated payment method.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// UpdateOrderStatusRequest moves an order to a new status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PickupRequest carries the scanned pickup QR payload.
type PickupRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// Checkout turns the cart into one order per seller.
func (h *OrderHandler) Checkout(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req CheckoutRequest
	if ok, err := bind(c, &req, "checkout"); !ok {
		return err
	}

	orders, err := h.orderUC.Checkout(c.Request().Context(), buyerID, entity.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newOrderResponses(orders), "Order placed successfully")
}

// ListOrders lists the caller's orders, optionally filtered by ?status=.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	list, err := h.orderUC.ListOrders(c.Request().Context(), actor, entity.OrderStatus(c.QueryParam("status")))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &OrderListResponse{
		Orders: newOrderResponses(list.Orders),
		Counts: newOrderCountsResponse(list.Counts),
	}, "")
}

// GetOrder returns an order to its buyer, its seller or an admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order), "")
}

// UpdateStatus completes or cancels an order.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if ok, err := bind(c, &req, "order status"); !ok {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), actor, id, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order), "Order status updated")
}

// PickupQR renders the pickup QR code as a PNG.
func (h *OrderHandler) PickupQR(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	png, err := h.orderUC.PickupQR(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// CompletePickup completes the order encoded in a scanned QR code.
func (h *OrderHandler) CompletePickup(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req PickupRequest
	if ok, err := bind(c, &req, "pickup"); !ok {
		return err
	}

	order, err := h.orderUC.CompletePickup(c.Request().Context(), actor, req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order), "Order picked up")
}
