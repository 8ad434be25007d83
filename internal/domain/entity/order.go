package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// validTransitions defines the allowed order status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// PaymentMethod is how the buyer pays. Payments are simulated.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodEWallet PaymentMethod = "ewallet"
)

// IsValid checks if the PaymentMethod is a known value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodEWallet:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks the simulated payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// InitialPaymentStatus is paid for every method except cash, which is settled at pickup.
func InitialPaymentStatus(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodCash {
		return PaymentStatusPending
	}

	return PaymentStatusPaid
}

// OrderItem is one purchased line with the price snapshotted at checkout.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       float64
}

// Subtotal returns price times quantity.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is the immutable record of a checkout for one seller. Only Status and PaymentStatus change afterwards.
type Order struct {
	ID            uuid.UUID
	OrderNumber   string
	BuyerID       uuid.UUID
	SellerID      uuid.UUID
	Items         []OrderItem
	Total         float64 // Always Σ items.Price × items.Quantity.
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder builds a pending order for one seller from the given cart lines.
func NewOrder(buyerID, sellerID uuid.UUID, lines []CartLine, method PaymentMethod, now time.Time) *Order {
	order := &Order{
		ID:            uuid.New(),
		OrderNumber:   GenerateOrderNumber(now),
		BuyerID:       buyerID,
		SellerID:      sellerID,
		Items:         make([]OrderItem, 0, len(lines)),
		PaymentMethod: method,
		PaymentStatus: InitialPaymentStatus(method),
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, line := range lines {
		order.Items = append(order.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.RescuePrice,
		})
	}
	order.RecalculateTotal()

	return order
}

// RecalculateTotal sets Total to Σ price × quantity rounded to cents.
func (o *Order) RecalculateTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	o.Total = Round2(total)
}

// ItemCount returns Σ quantity over the items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}

	return count
}

// CanTransitionTo reports whether the order may move from its current status to next.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	return slices.Contains(validTransitions[o.Status], next)
}

// TransitionTo applies a status change and the payment status that follows from it.
// Completing a cash order marks it paid; cancelling a paid order marks it refunded.
func (o *Order) TransitionTo(next OrderStatus, now time.Time) bool {
	if !o.CanTransitionTo(next) {
		return false
	}

	o.Status = next
	switch {
	case next == OrderStatusCompleted && o.PaymentStatus == PaymentStatusPending:
		o.PaymentStatus = PaymentStatusPaid
	case next == OrderStatusCancelled && o.PaymentStatus == PaymentStatusPaid:
		o.PaymentStatus = PaymentStatusRefunded
	}
	o.UpdatedAt = now

	return true
}

// InvolvesAccount reports whether the account is the buyer or the seller of the order.
func (o *Order) InvolvesAccount(accountID uuid.UUID) bool {
	return o.BuyerID == accountID || o.SellerID == accountID
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = slices.Clone(o.Items)

	return &cp
}

// GenerateOrderNumber returns a human-readable order reference such as ORD-20260101-3FA9C2.
func GenerateOrderNumber(now time.Time) string {
	date := now.UTC().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])

	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}

// OrderStatusCounts holds the number of orders per status, as shown on order tabs.
type OrderStatusCounts struct {
	All       int
	Pending   int
	Completed int
	Cancelled int
}

// CountOrdersByStatus tallies orders per status.
func CountOrdersByStatus(orders []*Order) OrderStatusCounts {
	counts := OrderStatusCounts{All: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case OrderStatusPending:
			counts.Pending++
		case OrderStatusCompleted:
			counts.Completed++
		case OrderStatusCancelled:
			counts.Cancelled++
		}
	}

	return counts
}
