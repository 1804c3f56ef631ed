package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"
)

// UserIDHeader заголовок с ID пользователя от API gateway
const UserIDHeader = "X-User-ID"

const (
	msgMissingCredentials = "отсутствуют данные аутентификации"
	msgInvalidCredentials = "некорректные данные аутентификации"
)

var errInvalidToken = errors.New("middleware: invalid token")

// UserClaims claims токена, выданного сервисом аутентификации по OTP
type UserClaims struct {
	jwt.RegisteredClaims
}

// Auth извлекает ID пользователя из запроса и кладет его в контекст.
// С непустым jwtSecret требуется Bearer JWT (HS256, sub = ID пользователя),
// иначе используется доверенный заголовок X-User-ID.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID int64
				err    error
			)

			if jwtSecret != "" {
				userID, err = userIDFromBearer(r.Header.Get("Authorization"), jwtSecret)
			} else {
				userID, err = userIDFromHeader(r.Header.Get(UserIDHeader))
			}

			if err != nil {
				if errors.Is(err, errMissingCredentials) {
					handlers.RespondUnauthorized(w, msgMissingCredentials)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidCredentials)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID аутентифицированного пользователя
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

var errMissingCredentials = errors.New("middleware: missing credentials")

func userIDFromHeader(value string) (int64, error) {
	if value == "" {
		return 0, errMissingCredentials
	}
	return parseUserID(value)
}

func userIDFromBearer(header, secret string) (int64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return 0, errMissingCredentials
	}

	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !token.Valid {
		return 0, errInvalidToken
	}

	return parseUserID(claims.Subject)
}

func parseUserID(value string) (int64, error) {
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: user id %q", errInvalidToken, value)
	}
	return userID, nil
}
