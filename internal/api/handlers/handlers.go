package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Машинные коды ошибок в теле ответа
const (
	CodeValidation                   = "validation_error"
	CodeDuplicateBooking             = "duplicate_booking"
	CodeQuotaExhausted               = "quota_exhausted"
	CodeQuotaContested               = "quota_contested"
	CodeInvalidScheduleConfiguration = "invalid_schedule_configuration"
	CodePaymentSignatureInvalid      = "payment_signature_invalid"
	CodeNotFound                     = "not_found"
	CodeForbidden                    = "forbidden"
	CodeUnauthorized                 = "unauthorized"
	CodeConflict                     = "conflict"
	CodeInternal                     = "internal_error"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrInvalidBody возвращается DecodeJSON при некорректном теле запроса
var ErrInvalidBody = errors.New("handlers: invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с машинным кодом и сообщением для пользователя
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest 400 validation_error
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

// RespondNotFound 404 not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden 403 forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondUnauthorized 401 unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondConflict 409 conflict
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeConflict, message)
}

// RespondInternalError 500 internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// DecodeJSON читает тело запроса в v и проверяет validate-теги
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return nil
}
