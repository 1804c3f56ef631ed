package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// RoutingKeyOrderPlaced публикуется после успешной оплаты заказа
	RoutingKeyOrderPlaced = "order.placed"

	// RoutingKeyPaymentFailed публикуется после неуспешной оплаты
	RoutingKeyPaymentFailed = "payment.failed"
)

// Envelope конверт события в брокере
type Envelope struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// OrderPlaced событие оплаченного заказа
type OrderPlaced struct {
	OrderID   int64           `json:"order_id"`
	UserID    int64           `json:"user_id"`
	PaymentID int64           `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// PaymentFailed событие неуспешной оплаты
type PaymentFailed struct {
	OrderID   int64 `json:"order_id"`
	UserID    int64 `json:"user_id"`
	PaymentID int64 `json:"payment_id"`
}
