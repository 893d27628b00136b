package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	isAdminKey contextKey = "is_admin"
)

// UserIDFromContext returns the authenticated user ID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// WithUserID stores the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithIsAdmin stores the superuser flag.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext reports whether the request belongs to a superuser.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// SuperuserChecker resolves whether a user ID still belongs to a superuser.
type SuperuserChecker interface {
	IsSuperuser(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin validates the session cookie, then looks the user up so that a
// revoked superuser loses access without waiting for the cookie to expire.
func RequireAdmin(sessionSecret []byte, checker SuperuserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := VerifySessionToken(cookie.Value, time.Now(), sessionSecret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_session")
				return
			}

			ok, err := checker.IsSuperuser(r.Context(), userID)
			if err != nil {
				slog.Error("superuser lookup failed", "error", err, "user_id", userID)
				writeError(w, http.StatusInternalServerError, "auth_failed")
				return
			}

			ctx := WithIsAdmin(WithUserID(r.Context(), userID), ok)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevUserID is the user ID injected when AUTH_REQUIRED=false.
const DevUserID = "dev-admin-id"

// DevAuth marks every request as coming from a superuser. Local development only.
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIsAdmin(WithUserID(r.Context(), DevUserID), true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
