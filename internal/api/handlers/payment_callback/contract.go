package payment_callback

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/integrations/paymentgateway"
	confirmPayment "github.com/m04kA/SMC-LaundryService/internal/usecase/confirm_payment"
)

type SignatureVerifier interface {
	Parse(payload []byte, signatureHeader string) (*paymentgateway.Confirmation, error)
}

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
