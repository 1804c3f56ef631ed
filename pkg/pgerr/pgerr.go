package pgerr

import (
	"context"
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	LockNotAvailable    = "55P03"
	QueryCanceled       = "57014"
)

// Code возвращает SQLSTATE код ошибки lib/pq или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation возвращает true для нарушения уникальности
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsForeignKeyViolation возвращает true для нарушения внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == ForeignKeyViolation
}

// IsLockContention возвращает true, если запрос не дождался блокировки:
// истек lock_timeout, запрос отменен или истек контекст
func IsLockContention(err error) bool {
	switch Code(err) {
	case LockNotAvailable, QueryCanceled:
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
