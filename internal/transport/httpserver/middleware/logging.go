package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"brawl-missions/pkg/logger"
)

// RequestLogger attaches a logger carrying the chi request id to the context.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := log.With("request_id", chimw.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), scoped)))
		})
	}
}
