package middleware

import (
	"net/http"
	"strings"
	"time"

	"airline-ops/flightcore/internal/auth"
	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/logging"
)

// StaffAuthMiddleware requires a valid staff bearer token. An empty secret
// disables the check, for local development only.
func StaffAuthMiddleware(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		logging.Warn("STAFF_JWT_SECRET is empty; staff routes are unauthenticated")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			if secret == "" {
				ctx := auth.SetUserClaims(r.Context(), auth.AnonymousClaims{})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, initTime, nil, "Unauthorized. Missing staff token", "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseStaffToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Rejected staff token",
					"request_id", auth.GetRequestID(r.Context()),
					"error", err.Error(),
				)
				common.RespondError(w, initTime, nil, "Unauthorized. Invalid staff token", "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
