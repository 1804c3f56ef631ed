package confirm_payment

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// Request итог платежа от платежного шлюза
type Request struct {
	PaymentID        int64
	GatewayReference *string
	Succeeded        bool
	// Amount сумма в минимальных единицах валюты (пайсы для inr)
	Amount   int64
	Currency string
}

// Response результат подтверждения.
// Applied = false означает повторный callback: состояние не менялось.
type Response struct {
	PaymentID int64
	OrderID   int64
	Status    domain.PaymentStatus
	Applied   bool
}
