package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrAmountMismatch возвращается, если сумма или валюта шлюза не совпадают с платежом
	ErrAmountMismatch = errors.New("confirm_payment: paid amount does not match payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
