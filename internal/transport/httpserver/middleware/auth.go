package middleware

import (
	"context"
	"net/http"
	"strings"

	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	"brawl-missions/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type contextKey int

const brawlerIDKey contextKey = iota

type BearerAuth struct {
	verifier TokenVerifier
	log      logger.Logger
}

func NewBearerAuth(verifier TokenVerifier, log logger.Logger) *BearerAuth {
	return &BearerAuth{verifier: verifier, log: log}
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated brawler id in the request context.
func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, r)
			return
		}

		brawlerID, err := a.verifier.Verify(token)
		if err != nil {
			logger.FromContext(r.Context(), a.log).BusinessError("auth: token rejected", err)
			unauthorized(w, r)
			return
		}

		ctx := WithBrawlerID(r.Context(), brawlerID)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx, a.log).With("brawler_id", brawlerID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	commonhandler.WriteError(w, r, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithBrawlerID(ctx context.Context, brawlerID int64) context.Context {
	return context.WithValue(ctx, brawlerIDKey, brawlerID)
}

func BrawlerIDFromContext(ctx context.Context) (int64, bool) {
	brawlerID, ok := ctx.Value(brawlerIDKey).(int64)
	if !ok || brawlerID <= 0 {
		return 0, false
	}
	return brawlerID, true
}
