package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/kosarica/internal/auth"
)

type contextKey string

const cartIDKey contextKey = "cart_id"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "cart_session"

// SessionMiddleware resolves the session cookie to a cart id, minting a new
// session (and cart slot) when the cookie is absent, expired, or invalid.
// The cart id is added to the request context.
func SessionMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cartID string
			if c, err := r.Cookie(SessionCookie); err == nil {
				if claims, err := auth.ValidateSessionToken(secret, c.Value); err == nil {
					cartID = claims.CartID
				}
			}

			if cartID == "" {
				cartID = uuid.NewString()
				token, err := auth.NewSessionToken(secret, cartID)
				if err != nil {
					slog.Error("failed to mint session token", "error", err)
					jsonError(w, http.StatusInternalServerError, "failed to start session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(auth.TokenExpiry / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), cartIDKey, cartID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCartID retrieves the session's cart id from the context.
func GetCartID(ctx context.Context) string {
	cartID, _ := ctx.Value(cartIDKey).(string)
	return cartID
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
