package handler

import (
	"net/http"
	"time"

	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/response"
	"rescue/internal/domain/entity"
	"rescue/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
}

// ProductHandler serves the marketplace and seller listings.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	now       func() time.Time
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		now:       time.Now,
	}
}

// AddProductRequest is the body for a new listing.
type AddProductRequest struct {
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"original_price" validate:"gte=0"`
	RescuePrice   float64   `json:"rescue_price" validate:"gte=0"`
	Quantity      int       `json:"quantity" validate:"gte=0"`
	ExpiryDate    time.Time `json:"expiry_date" validate:"required"`
	Status        string    `json:"status" validate:"omitempty,oneof=active inactive"`
	Image         string    `json:"image"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64  `json:"longitude" validate:"omitempty,longitude"`
}

// UpdateProductRequest is a partial update. Omitted fields are left untouched.
type UpdateProductRequest struct {
	Name          *string    `json:"name" validate:"omitempty,min=1"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	OriginalPrice *float64   `json:"original_price"`
	RescuePrice   *float64   `json:"rescue_price"`
	Quantity      *int       `json:"quantity"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active inactive"`
	Image         *string    `json:"image"`
	Location      *string    `json:"location"`
	Latitude      *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64   `json:"longitude" validate:"omitempty,longitude"`
}

func (r *UpdateProductRequest) patch() entity.ProductPatch {
	patch := entity.ProductPatch{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		OriginalPrice: r.OriginalPrice,
		RescuePrice:   r.RescuePrice,
		Quantity:      r.Quantity,
		ExpiryDate:    r.ExpiryDate,
		Image:         r.Image,
		Location:      r.Location,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
	if r.Status != nil {
		status := entity.ProductStatus(*r.Status)
		patch.Status = &status
	}

	return patch
}

// ListProducts returns the marketplace: active, in-stock products filtered by
// ?category=, ?search= and, when both ?lat= and ?lng= are given, ?radius= in kilometers.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var (
		query    usecase.MarketplaceQuery
		lat, lng float64
	)
	err := echo.QueryParamsBinder(c).
		String("category", &query.Category).
		String("search", &query.Search).
		Float64("lat", &lat).
		Float64("lng", &lng).
		Float64("radius", &query.RadiusKm).
		BindError()
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "Invalid marketplace query")
	}
	if c.QueryParam("lat") != "" && c.QueryParam("lng") != "" {
		query.Latitude = &lat
		query.Longitude = &lng
	}

	products, err := h.catalogUC.ListMarketplace(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponses(products, h.now()), "")
}

// GetProduct returns one product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product, h.now()), "")
}

// AddProduct lists a new product for the authenticated seller.
func (h *ProductHandler) AddProduct(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req AddProductRequest
	if ok, err := bind(c, &req, "product"); !ok {
		return err
	}

	product, err := h.catalogUC.AddProduct(c.Request().Context(), actor, usecase.AddProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		OriginalPrice: req.OriginalPrice,
		RescuePrice:   req.RescuePrice,
		Quantity:      req.Quantity,
		ExpiryDate:    req.ExpiryDate,
		Status:        entity.ProductStatus(req.Status),
		Image:         req.Image,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(product, h.now()), "Product added successfully")
}

// UpdateProduct applies a partial update as the owning seller or an admin.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateProductRequest
	if ok, err := bind(c, &req, "product"); !ok {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), actor, id, req.patch())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product, h.now()), "Product updated successfully")
}

// RemoveProduct deletes a product and drops it from every cart.
func (h *ProductHandler) RemoveProduct(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.catalogUC.RemoveProduct(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product removed successfully")
}

// ListSellerProducts returns every product of the authenticated seller, including inactive ones.
func (h *ProductHandler) ListSellerProducts(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	products, err := h.catalogUC.ListSellerProducts(c.Request().Context(), actor.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponses(products, h.now()), "")
}
