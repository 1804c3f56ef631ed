package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

// RequestIDHeader заголовок с ID запроса
const RequestIDHeader = "X-Request-ID"

// RequestContext извлекает W3C trace context, назначает X-Request-ID
// и пишет строку access-лога с полями запроса.
func RequestContext(base *logger.Logger) func(http.Handler) http.Handler {
	prop := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			ctx = context.WithValue(ctx, requestIDKey, requestID)

			fields := []interface{}{"request_id", requestID}
			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				fields = append(fields, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
			}
			reqLogger := base.With(fields...)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			reqLogger.Info("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

// GetRequestID возвращает ID текущего запроса
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
