package paymentgateway

import "errors"

var (
	// ErrSignatureInvalid возвращается, если подпись callback не прошла проверку
	ErrSignatureInvalid = errors.New("paymentgateway: invalid callback signature")

	// ErrUnsupportedEvent возвращается для событий, не влияющих на статус платежа
	ErrUnsupportedEvent = errors.New("paymentgateway: unsupported event type")

	// ErrInvalidPayload возвращается при некорректном содержимом события
	ErrInvalidPayload = errors.New("paymentgateway: invalid callback payload")
)
