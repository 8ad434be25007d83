package handler

import (
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/usecase"

	"github.com/google/uuid"
)

// AccountResponse is the public view of an account. The password hash is never exposed.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Verified  bool      `json:"verified"`
	StoreName string    `json:"store_name,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newAccountResponse(a *entity.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role.String(),
		Status:    string(a.Status),
		Verified:  a.Verified,
		StoreName: a.StoreName(),
		Address:   a.Address(),
		CreatedAt: a.CreatedAt,
	}
}

func newAccountResponses(accounts []*entity.Account) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, newAccountResponse(a))
	}

	return out
}

// AuthResponse carries the account and its token pair.
type AuthResponse struct {
	Account      *AccountResponse `json:"account"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

func newAuthResponse(out *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Account:      newAccountResponse(out.Account),
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}
}

// ExpiryResponse describes how close a product is to expiring.
type ExpiryResponse struct {
	State     string `json:"state"`
	HoursLeft int    `json:"hours_left"`
}

// ProductResponse is the listing view of a product.
type ProductResponse struct {
	ID              uuid.UUID      `json:"id"`
	SellerID        uuid.UUID      `json:"seller_id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category,omitempty"`
	OriginalPrice   float64        `json:"original_price"`
	RescuePrice     float64        `json:"rescue_price"`
	DiscountPercent float64        `json:"discount_percent"`
	Quantity        int            `json:"quantity"`
	ExpiryDate      time.Time      `json:"expiry_date"`
	Expiry          ExpiryResponse `json:"expiry"`
	Status          string         `json:"status"`
	Image           string         `json:"image,omitempty"`
	StoreName       string         `json:"store_name,omitempty"`
	Location        string         `json:"location,omitempty"`
	Latitude        *float64       `json:"latitude,omitempty"`
	Longitude       *float64       `json:"longitude,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func newProductResponse(p *entity.Product, now time.Time) *ProductResponse {
	expiry := p.Expiry(now)

	return &ProductResponse{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		OriginalPrice:   p.OriginalPrice,
		RescuePrice:     p.RescuePrice,
		DiscountPercent: entity.Round2(p.DiscountPercent()),
		Quantity:        p.Quantity,
		ExpiryDate:      p.ExpiryDate,
		Expiry:          ExpiryResponse{State: string(expiry.State), HoursLeft: expiry.HoursLeft},
		Status:          string(p.Status),
		Image:           p.Image,
		StoreName:       p.StoreName,
		Location:        p.Location,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func newProductResponses(products []*entity.Product, now time.Time) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p, now))
	}

	return out
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	Product  *ProductResponse `json:"product"`
	Quantity int              `json:"quantity"`
	Subtotal float64          `json:"subtotal"`
}

// CartResponse is the cart with its derived totals.
type CartResponse struct {
	Items     []*CartItemResponse `json:"items"`
	Total     float64             `json:"total"`
	ItemCount int                 `json:"item_count"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newCartResponse(cart *entity.Cart, now time.Time) *CartResponse {
	resp := &CartResponse{
		Items:     make([]*CartItemResponse, 0, len(cart.Lines)),
		UpdatedAt: cart.UpdatedAt,
	}

	var total float64
	for _, line := range cart.Lines {
		resp.Items = append(resp.Items, &CartItemResponse{
			Product:  newProductResponse(&line.Product, now),
			Quantity: line.Quantity,
			Subtotal: entity.Round2(line.Subtotal()),
		})
		total += line.Subtotal()
		resp.ItemCount += line.Quantity
	}
	resp.Total = entity.Round2(total)

	return resp
}

// OrderItemResponse is one purchased line.
type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Subtotal    float64   `json:"subtotal"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID            uuid.UUID            `json:"id"`
	OrderNumber   string               `json:"order_number"`
	BuyerID       uuid.UUID            `json:"buyer_id"`
	SellerID      uuid.UUID            `json:"seller_id"`
	Items         []*OrderItemResponse `json:"items"`
	ItemCount     int                  `json:"item_count"`
	Total         float64              `json:"total"`
	PaymentMethod string               `json:"payment_method"`
	PaymentStatus string               `json:"payment_status"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func newOrderResponse(o *entity.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		BuyerID:       o.BuyerID,
		SellerID:      o.SellerID,
		Items:         make([]*OrderItemResponse, 0, len(o.Items)),
		ItemCount:     o.ItemCount(),
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, &OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    entity.Round2(item.Subtotal()),
		})
	}

	return resp
}

func newOrderResponses(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}

	return out
}

// OrderCountsResponse holds per-status order counts.
type OrderCountsResponse struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func newOrderCountsResponse(c entity.OrderStatusCounts) OrderCountsResponse {
	return OrderCountsResponse{
		All:       c.All,
		Pending:   c.Pending,
		Completed: c.Completed,
		Cancelled: c.Cancelled,
	}
}

// OrderListResponse is a filtered order listing with counts.
type OrderListResponse struct {
	Orders []*OrderResponse    `json:"orders"`
	Counts OrderCountsResponse `json:"counts"`
}

// PlatformStatsResponse is the admin dashboard.
type PlatformStatsResponse struct {
	TotalUsers             int     `json:"total_users"`
	TotalBuyers            int     `json:"total_buyers"`
	TotalSellers           int     `json:"total_sellers"`
	VerifiedSellers        int     `json:"verified_sellers"`
	TotalProducts          int     `json:"total_products"`
	ActiveProducts         int     `json:"active_products"`
	AverageDiscountPercent float64 `json:"average_discount_percent"`
	TotalRevenue           float64 `json:"total_revenue"`
	TotalOrders            int     `json:"total_orders"`
	FoodRescued            int     `json:"food_rescued"`
}

func newPlatformStatsResponse(s *entity.PlatformStats) *PlatformStatsResponse {
	return &PlatformStatsResponse{
		TotalUsers:             s.TotalUsers,
		TotalBuyers:            s.TotalBuyers,
		TotalSellers:           s.TotalSellers,
		VerifiedSellers:        s.VerifiedSellers,
		TotalProducts:          s.TotalProducts,
		ActiveProducts:         s.ActiveProducts,
		AverageDiscountPercent: s.AverageDiscountPercent,
		TotalRevenue:           s.TotalRevenue,
		TotalOrders:            s.TotalOrders,
		FoodRescued:            s.FoodRescued,
	}
}

// SellerStatsResponse is the seller dashboard.
type SellerStatsResponse struct {
	TotalProducts  int                 `json:"total_products"`
	ActiveProducts int                 `json:"active_products"`
	UrgentProducts int                 `json:"urgent_products"`
	InventoryValue float64             `json:"inventory_value"`
	Revenue        float64             `json:"revenue"`
	Orders         OrderCountsResponse `json:"orders"`
}

func newSellerStatsResponse(s *entity.SellerStats) *SellerStatsResponse {
	return &SellerStatsResponse{
		TotalProducts:  s.TotalProducts,
		ActiveProducts: s.ActiveProducts,
		UrgentProducts: s.UrgentProducts,
		InventoryValue: s.InventoryValue,
		Revenue:        s.Revenue,
		Orders:         newOrderCountsResponse(s.Orders),
	}
}

// DeviceResponse is a registered push device.
type DeviceResponse struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newDeviceResponse(d *entity.Device) *DeviceResponse {
	return &DeviceResponse{
		ID:        d.ID,
		DeviceID:  d.DeviceID,
		Platform:  string(d.Platform),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
