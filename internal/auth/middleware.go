package auth

import (
	"context"
	"net/http"
)

// TokenCookie is the name of the HttpOnly cookie carrying the JWT.
const TokenCookie = "token"

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means no other package can read or
// shadow the values we put in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the cookie, verifies the signature and expiry,
// then requires the session named by the jti claim to still exist in
// the session registry. A structurally valid token whose session was
// logged out (or whose ephemeral session died with a restart) is
// rejected — that is the whole point of keeping sessions server-side.
func RequireAuth(tokens *TokenService, sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, sessionID, err := tokens.Validate(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			session, ok, err := sessions.Lookup(r.Context(), sessionID)
			if err != nil || !ok || session.UserID != userID {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
}

// UserIDFromContext retrieves the authenticated user's ID, or
// (0, false) for an anonymous request.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id != 0
}
