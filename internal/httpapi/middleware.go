package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/johan374/Ecommerce-production/internal/session"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

const sessionCookieName = "cart_session"

// SessionMiddleware attaches the shopper's cart session to the request
// context, issuing a fresh session cookie when none is present. An
// expired session id silently starts an empty cart.
func SessionMiddleware(registry *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				id = cookie.Value
			}

			sess := registry.GetOrCreate(id)
			if sess.ID != id {
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(24 * time.Hour),
				})
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionCtxKey).(*session.Session); ok {
		return sess
	}
	return nil
}
