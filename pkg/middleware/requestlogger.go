package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cartwheel-io/storefront/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// the request's correlation ID and active trace/span IDs. Mount it after
// RequestLogging and Tracing so both sources are populated; handlers get the
// logger back via logger.FromContext.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			enriched := logger.WithContext(r.Context(), base)
			ctx := logger.NewContext(r.Context(), enriched)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
