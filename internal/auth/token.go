// Package auth provides the identity building blocks: JWT session
// tokens, bcrypt password hashing, the password strength scorer, and
// the server-side session registry.
//
// LOGIN FLOW:
//  1. POST /api/auth/login verifies the bcrypt hash
//  2. a server-side session is created (durable scope if "remember me",
//     ephemeral scope otherwise) with an xid as its ID
//  3. a JWT carrying the user ID (sub) and session ID (jti) goes into
//     an HttpOnly cookie
//  4. on each request the middleware validates the JWT AND checks the
//     session still exists — so logout and restarts actually revoke
//
// The JWT alone is not enough to be authenticated; the live session is.
// A stateless JWT would make "log me in just this once" impossible to
// honour, since the token would keep working after the session ended.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies the session JWTs. It holds the HMAC
// secret — the same secret must verify what it signed.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at
// least 32 bytes of random data in production, e.g.
// JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds the registered JWT claims: sub carries the user ID,
// jti the session ID.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates a signed token for the given user and session.
// The lifetime is caller-chosen: remembered logins get a long one, the
// cookie for one-time logins dies with the browser session anyway.
func (s *TokenService) Generate(userID int64, sessionID string, lifetime time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			Issuer:    "shop-ledger",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning the user ID
// and session ID it encodes. Fails on a bad signature, an expired
// token, or an unexpected signing algorithm.
func (s *TokenService) Validate(tokenStr string) (userID int64, sessionID string, err error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		// Reject tokens signed with anything but HMAC — accepting the
		// token's own alg claim blindly is the classic JWT mistake.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("auth: parsing token: %w", err)
	}
	if !token.Valid {
		return 0, "", errors.New("auth: invalid token")
	}

	userID, err = strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("auth: token subject %q is not a user ID: %w", c.Subject, err)
	}
	return userID, c.ID, nil
}
