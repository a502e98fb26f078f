package middleware_http

import (
	"fmt"
	"log/slog"
	"net/http"

	"catalog-crud/internal/logger"
)

// Recover turns a handler panic into a 500 with the usual {message} body.
func Recover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "panic recovered",
						slog.String("panic", fmt.Sprint(rec)),
						slog.String("http.method", r.Method),
						slog.String("http.path", r.URL.Path),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"message":"Internal server error"}` + "\n"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
