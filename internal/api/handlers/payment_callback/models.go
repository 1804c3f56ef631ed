package payment_callback

import (
	"github.com/m04kA/SMC-LaundryService/internal/integrations/paymentgateway"
	confirmPayment "github.com/m04kA/SMC-LaundryService/internal/usecase/confirm_payment"
)

const (
	statusIgnored = "ignored"

	maxPayloadBytes = 64 << 10
)

// CallbackResponse HTTP response model
type CallbackResponse struct {
	PaymentID int64  `json:"payment_id,omitempty"`
	Status    string `json:"status"`
	Applied   bool   `json:"applied"`
}

// ToUseCaseRequest конвертирует подтверждение шлюза в модель use case
func ToUseCaseRequest(confirmation *paymentgateway.Confirmation) *confirmPayment.Request {
	req := &confirmPayment.Request{
		PaymentID: confirmation.PaymentID,
		Succeeded: confirmation.Succeeded,
		Amount:    confirmation.Amount,
		Currency:  confirmation.Currency,
	}
	if confirmation.GatewayReference != "" {
		ref := confirmation.GatewayReference
		req.GatewayReference = &ref
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *CallbackResponse {
	return &CallbackResponse{
		PaymentID: resp.PaymentID,
		Status:    string(resp.Status),
		Applied:   resp.Applied,
	}
}
