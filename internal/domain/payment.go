package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsTerminal returns true for success and failed
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentSource is the payment method chosen by the user
type PaymentSource string

const (
	PaymentSourceCard            PaymentSource = "card"
	PaymentSourceBankTransaction PaymentSource = "bank_transaction"
	PaymentSourceUPI             PaymentSource = "upi"
)

// IsValid returns true for a known payment source
func (s PaymentSource) IsValid() bool {
	return s == PaymentSourceCard || s == PaymentSourceBankTransaction || s == PaymentSourceUPI
}

// Payment is the single payment of an order
type Payment struct {
	ID               int64
	OrderID          int64
	UserID           int64
	Amount           decimal.Decimal
	Source           PaymentSource
	Status           PaymentStatus
	GatewayReference *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
