package paymentgateway

import (
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func eventPayload(eventType, metadata string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2020-08-27",
		"type": %q,
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "amount": 3100, "currency": "inr", "metadata": %s}}
	}`, eventType, metadata))
}

func sign(payload []byte, secret string) *webhook.SignedPayload {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
}

func TestVerifier_Parse(t *testing.T) {
	tests := []struct {
		name          string
		eventType     string
		wantSucceeded bool
	}{
		{"succeeded", "payment_intent.succeeded", true},
		{"failed", "payment_intent.payment_failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed := sign(eventPayload(tt.eventType, `{"payment_id": "42"}`), testSecret)

			got, err := NewVerifier(testSecret).Parse(signed.Payload, signed.Header)

			require.NoError(t, err)
			assert.Equal(t, int64(42), got.PaymentID)
			assert.Equal(t, "pi_123", got.GatewayReference)
			assert.Equal(t, tt.wantSucceeded, got.Succeeded)
			assert.Equal(t, int64(3100), got.Amount)
			assert.Equal(t, "inr", got.Currency)
		})
	}
}

func TestVerifier_Parse_WrongSecret(t *testing.T) {
	signed := sign(eventPayload("payment_intent.succeeded", `{"payment_id": "42"}`), "whsec_other")

	_, err := NewVerifier(testSecret).Parse(signed.Payload, signed.Header)

	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifier_Parse_TamperedPayload(t *testing.T) {
	signed := sign(eventPayload("payment_intent.payment_failed", `{"payment_id": "42"}`), testSecret)
	tampered := eventPayload("payment_intent.succeeded", `{"payment_id": "42"}`)

	_, err := NewVerifier(testSecret).Parse(tampered, signed.Header)

	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifier_Parse_UnsupportedEvent(t *testing.T) {
	signed := sign(eventPayload("customer.created", `{}`), testSecret)

	_, err := NewVerifier(testSecret).Parse(signed.Payload, signed.Header)

	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestVerifier_Parse_MissingPaymentID(t *testing.T) {
	signed := sign(eventPayload("payment_intent.succeeded", `{}`), testSecret)

	_, err := NewVerifier(testSecret).Parse(signed.Payload, signed.Header)

	assert.ErrorIs(t, err, ErrInvalidPayload)
}
