package logging

import (
	"log/slog"
	"net/http"
)

func valueOrMissing(value string) string {
	if value == "" {
		return "<missing>"
	}
	return value
}

// NewRequestLoggerMiddleware stores a request scoped logger in the request context.
// Handlers add the parsed query parameters themselves.
func NewRequestLoggerMiddleware(logger *slog.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.With(
				slog.String("methodPath", r.Method+" "+r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("userId", valueOrMissing(r.Header.Get("X-User-Id"))),
				slog.String("userAgent", valueOrMissing(r.UserAgent())),
			)

			next(w, r.WithContext(AddToContext(r.Context(), requestLogger)))
		}
	}
}
