package paymentgateway

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Verifier проверяет подпись callback платежного шлюза и извлекает итог платежа
type Verifier struct {
	secret string
}

// NewVerifier создает новый экземпляр проверки callback
func NewVerifier(webhookSecret string) *Verifier {
	return &Verifier{secret: webhookSecret}
}

// Parse проверяет подпись и возвращает итог платежа.
// Учитываются только события payment_intent.succeeded и payment_intent.payment_failed.
func (v *Verifier) Parse(payload []byte, signatureHeader string) (*Confirmation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	var succeeded bool
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		succeeded = true
	case stripe.EventTypePaymentIntentPaymentFailed:
		succeeded = false
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, event.Type)
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidPayload, event.ID)
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", ErrInvalidPayload, err)
	}

	paymentID, err := strconv.ParseInt(intent.Metadata[MetadataPaymentID], 10, 64)
	if err != nil || paymentID <= 0 {
		return nil, fmt.Errorf("%w: payment intent %s has no %s metadata", ErrInvalidPayload, intent.ID, MetadataPaymentID)
	}

	return &Confirmation{
		PaymentID:        paymentID,
		GatewayReference: intent.ID,
		Succeeded:        succeeded,
		Amount:           intent.Amount,
		Currency:         string(intent.Currency),
	}, nil
}
