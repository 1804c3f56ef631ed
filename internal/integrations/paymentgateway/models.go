package paymentgateway

// MetadataPaymentID ключ метаданных платежного намерения с ID платежа сервиса
const MetadataPaymentID = "payment_id"

// Confirmation итог платежа, полученный от платежного шлюза
type Confirmation struct {
	PaymentID        int64
	GatewayReference string
	Succeeded        bool
	// Amount сумма платежного намерения в минимальных единицах валюты
	Amount   int64
	Currency string
}
