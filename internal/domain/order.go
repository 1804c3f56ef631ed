package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPicked         OrderStatus = "picked"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// InitialOrderStatus is the state every order is created in
const InitialOrderStatus = OrderStatusPaymentPending

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPaymentPending: 0,
	OrderStatusPlaced:         1,
	OrderStatusPicked:         2,
	OrderStatusDelivered:      3,
}

// IsValid returns true for a known order status
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// IsTerminal returns true if no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// CanTransitionTo reports whether next is strictly ahead of s
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// IsAdministrative returns true for statuses set by the shop owner
func (s OrderStatus) IsAdministrative() bool {
	return s == OrderStatusPicked || s == OrderStatusDelivered
}

// PreviousStatuses returns every status from which next is reachable
func PreviousStatuses(next OrderStatus) []OrderStatus {
	to, ok := orderStatusRank[next]
	if !ok {
		return nil
	}
	result := make([]OrderStatus, 0, to)
	for _, s := range []OrderStatus{OrderStatusPaymentPending, OrderStatusPlaced, OrderStatusPicked, OrderStatusDelivered} {
		if orderStatusRank[s] < to {
			result = append(result, s)
		}
	}
	return result
}

// Order is a laundry order bound to one pickup and one delivery booking
type Order struct {
	ID                int64
	UserID            int64
	PickupBookingID   int64
	DeliveryBookingID int64
	TotalPrice        decimal.Decimal
	Status            OrderStatus
	Details           []OrderDetail
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderDetail is a price snapshot of one cart line
type OrderDetail struct {
	ID                int64
	OrderID           int64
	ItemID            int64
	WashCategoryID    int64
	Quantity          int
	ProductPrice      decimal.Decimal
	WashCategoryPrice decimal.Decimal
	SubtotalPrice     decimal.Decimal
}

// NewOrderDetail snapshots prices and computes the subtotal
// as (product_price + wash_category_price) * quantity
func NewOrderDetail(itemID, washCategoryID int64, quantity int, productPrice, washCategoryPrice decimal.Decimal) OrderDetail {
	return OrderDetail{
		ItemID:            itemID,
		WashCategoryID:    washCategoryID,
		Quantity:          quantity,
		ProductPrice:      productPrice,
		WashCategoryPrice: washCategoryPrice,
		SubtotalPrice:     productPrice.Add(washCategoryPrice).Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// TotalOf sums subtotal prices
func TotalOf(details []OrderDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.SubtotalPrice)
	}
	return total
}
