package handler

import (
	"net/http"
	"time"

	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/response"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
}

// CartHandler serves the buyer's cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	now    func() time.Time
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		now:    time.Now,
	}
}

// AddCartItemRequest adds a product to the cart. Quantity defaults to 1.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  *int      `json:"quantity"`
}

// UpdateCartItemRequest sets the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the cart with its total and item count.
func (h *CartHandler) GetCart(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), buyerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(cart, h.now()), "")
}

// AddItem adds units of a product, capped at its stock.
func (h *CartHandler) AddItem(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req AddCartItemRequest
	if ok, err := bind(c, &req, "cart item"); !ok {
		return err
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, err := h.cartUC.AddToCart(c.Request().Context(), buyerID, req.ProductID, qty)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(cart, h.now()), "Added to cart")
}

// UpdateItem overwrites the quantity of a cart line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	productID, ok := paramUUID(c, "productId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateCartItemRequest
	if ok, err := bind(c, &req, "cart item"); !ok {
		return err
	}

	cart, err := h.cartUC.UpdateQuantity(c.Request().Context(), buyerID, productID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(cart, h.now()), "Cart updated")
}

// RemoveItem drops a line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	productID, ok := paramUUID(c, "productId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	cart, err := h.cartUC.RemoveFromCart(c.Request().Context(), buyerID, productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(cart, h.now()), "Removed from cart")
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	buyerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), buyerID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
