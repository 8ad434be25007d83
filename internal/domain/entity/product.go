package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProductStatus controls whether a product is listed on the marketplace.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the ProductStatus is a known value.
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product is a near-expiry food item listed by exactly one seller.
type Product struct {
	ID            uuid.UUID
	SellerID      uuid.UUID
	Name          string
	Description   string
	Category      string
	OriginalPrice float64
	RescuePrice   float64 // Must not exceed OriginalPrice.
	Quantity      int     // Units in stock, never negative.
	ExpiryDate    time.Time
	Status        ProductStatus
	Image         string
	StoreName     string
	Location      string
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAvailable reports whether the product can be added to a cart.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusActive && p.Quantity > 0
}

// HasValidPricing reports whether prices are non-negative and the rescue price does not exceed the original price.
func (p *Product) HasValidPricing() bool {
	return p.OriginalPrice >= 0 && p.RescuePrice >= 0 && p.RescuePrice <= p.OriginalPrice
}

// DiscountPercent returns (original - rescue) / original * 100, or 0 when the original price is 0.
func (p *Product) DiscountPercent() float64 {
	if p.OriginalPrice <= 0 {
		return 0
	}

	return (p.OriginalPrice - p.RescuePrice) / p.OriginalPrice * 100
}

// Coordinates returns the product pickup location when both coordinates are set.
func (p *Product) Coordinates() (lat, lng float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}

	return *p.Latitude, *p.Longitude, true
}

// ExpiryState buckets the time left before a product expires.
type ExpiryState string

const (
	ExpiryExpired ExpiryState = "expired"
	ExpiryUrgent  ExpiryState = "urgent" // under 6 hours
	ExpirySoon    ExpiryState = "soon"   // under 24 hours
	ExpiryFresh   ExpiryState = "fresh"
)

// ExpiryInfo describes how close a product is to its expiry date.
type ExpiryInfo struct {
	State     ExpiryState
	HoursLeft int
}

// Expiry classifies the product relative to now.
func (p *Product) Expiry(now time.Time) ExpiryInfo {
	left := p.ExpiryDate.Sub(now)
	hours := int(left.Hours())

	switch {
	case left <= 0:
		return ExpiryInfo{State: ExpiryExpired, HoursLeft: 0}
	case left < 6*time.Hour:
		return ExpiryInfo{State: ExpiryUrgent, HoursLeft: hours}
	case left < 24*time.Hour:
		return ExpiryInfo{State: ExpirySoon, HoursLeft: hours}
	default:
		return ExpiryInfo{State: ExpiryFresh, HoursLeft: hours}
	}
}

// ExpiresWithin reports whether the product has not expired yet but will within window.
func (p *Product) ExpiresWithin(now time.Time, window time.Duration) bool {
	left := p.ExpiryDate.Sub(now)

	return left > 0 && left <= window
}

// MatchesSearch reports whether term appears in the product name or store name, case-insensitively.
func (p *Product) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.StoreName), term)
}

// ProductPatch carries the fields of a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string
	Description   *string
	Category      *string
	OriginalPrice *float64
	RescuePrice   *float64
	Quantity      *int
	ExpiryDate    *time.Time
	Status        *ProductStatus
	Image         *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
}

// Apply merges the patch into the product shallowly. It does not revalidate pricing.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.RescuePrice != nil {
		p.RescuePrice = *patch.RescuePrice
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = *patch.ExpiryDate
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Latitude != nil {
		lat := *patch.Latitude
		p.Latitude = &lat
	}
	if patch.Longitude != nil {
		lng := *patch.Longitude
		p.Longitude = &lng
	}
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Latitude != nil {
		lat := *p.Latitude
		cp.Latitude = &lat
	}
	if p.Longitude != nil {
		lng := *p.Longitude
		cp.Longitude = &lng
	}

	return &cp
}
