package domain

import "github.com/shopspring/decimal"

// CartLine is a cart row joined with current item and wash category prices
type CartLine struct {
	ID                int64
	UserID            int64
	ItemID            int64
	WashCategoryID    int64
	Quantity          int
	ItemPrice         decimal.Decimal
	WashCategoryExtra decimal.Decimal
}

// ToOrderDetail snapshots the line at current prices
func (l CartLine) ToOrderDetail() OrderDetail {
	return NewOrderDetail(l.ItemID, l.WashCategoryID, l.Quantity, l.ItemPrice, l.WashCategoryExtra)
}

// Address is a user's pickup/delivery address (read-only here)
type Address struct {
	ID     int64
	UserID int64
}
