package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// CreatePaymentRequest запрос на создание платежа по заказу
type CreatePaymentRequest struct {
	UserID  int64  `json:"-"`
	OrderID int64  `json:"-"`
	Source  string `json:"source" validate:"required,oneof=card bank_transaction upi"`
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"order_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Source           string          `json:"source"`
	Status           string          `json:"status"`
	GatewayReference *string         `json:"gateway_reference,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment, currency string) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Currency:         currency,
		Source:           string(p.Source),
		Status:           string(p.Status),
		GatewayReference: p.GatewayReference,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
