package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is a product snapshot together with the quantity the buyer chose.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal returns rescue price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.Product.RescuePrice * float64(l.Quantity)
}

// Cart holds the lines a single buyer has collected before checkout.
type Cart struct {
	BuyerID   uuid.UUID
	Lines     []CartLine
	UpdatedAt time.Time
}

// NewCart returns an empty cart for the buyer.
func NewCart(buyerID uuid.UUID) *Cart {
	return &Cart{BuyerID: buyerID, Lines: []CartLine{}}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}

	return -1
}

// Add puts qty units of product in the cart, never exceeding the product's current stock.
// An existing line is refreshed with the new snapshot and becomes min(existing+qty, stock).
// It returns the resulting line quantity.
func (c *Cart) Add(product *Product, qty int) int {
	if idx := c.indexOf(product.ID); idx >= 0 {
		line := &c.Lines[idx]
		line.Product = *product.Clone()
		line.Quantity = min(line.Quantity+qty, product.Quantity)

		return line.Quantity
	}

	quantity := min(qty, product.Quantity)
	c.Lines = append(c.Lines, CartLine{Product: *product.Clone(), Quantity: quantity})

	return quantity
}

// SetQuantity overwrites the quantity of a line. No stock clamp is applied here.
// It returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Lines[idx].Quantity = qty

	return true
}

// Remove drops the line for productID and reports whether it existed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)

	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total returns Σ rescuePrice × quantity rounded to cents.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Subtotal()
	}

	return Round2(total)
}

// Count returns Σ quantity.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

// SellerLines groups the cart lines that belong to one seller.
type SellerLines struct {
	SellerID uuid.UUID
	Lines    []CartLine
}

// GroupBySeller splits the cart per seller, keeping sellers and lines in first-appearance order.
func (c *Cart) GroupBySeller() []SellerLines {
	groups := make([]SellerLines, 0, 1)
	index := make(map[uuid.UUID]int)

	for _, line := range c.Lines {
		idx, ok := index[line.Product.SellerID]
		if !ok {
			idx = len(groups)
			index[line.Product.SellerID] = idx
			groups = append(groups, SellerLines{SellerID: line.Product.SellerID})
		}
		groups[idx].Lines = append(groups[idx].Lines, line)
	}

	return groups
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := &Cart{BuyerID: c.BuyerID, UpdatedAt: c.UpdatedAt, Lines: make([]CartLine, len(c.Lines))}
	for i, line := range c.Lines {
		cp.Lines[i] = CartLine{Product: *line.Product.Clone(), Quantity: line.Quantity}
	}

	return cp
}
