// Package service contains the business logic layer.
//
// THE THREE LAYERS:
//
//	Handler (HTTP)     → parses requests, writes responses, sets cookies
//	Service (here)     → validates, enforces rules, orchestrates
//	Store (persistence)→ reads/writes the collections
//
// Services accept primitives and return domain values and domain
// errors (apperror) — never HTTP types or status codes. That keeps
// every rule in one place and testable with plain function calls.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/auth"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/store"
)

const (
	MinUsernameLength = 3

	// RememberedTokenLifetime is the JWT lifetime for "remember me"
	// logins; the cookie persists just as long. One-time logins get a
	// browser-session cookie, so their token lifetime only caps how
	// long an open browser stays signed in.
	RememberedTokenLifetime = 30 * 24 * time.Hour
	SessionTokenLifetime    = 12 * time.Hour
)

// The original signup form accepted anything shaped like
// something@something.tld; keep the same loose check.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService handles signup, login, logout, and user lookup.
type AuthService struct {
	users     *store.Collections
	sessions  *auth.SessionStore
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users *store.Collections,
	sessions *auth.SessionStore,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Signup validates and creates a new operator account.
//
// Username uniqueness is case-sensitive exact match against the stored
// collection; a duplicate fails with a conflict and appends nothing.
func (s *AuthService) Signup(ctx context.Context, username, email, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < MinUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.ValidationFailed("email", "enter a valid email")
	}
	if score, _ := auth.PasswordStrength(password); score < auth.MinSignupStrength {
		return nil, apperror.ValidationFailed("password", "password is too weak")
	}
	if password != confirm {
		return nil, apperror.ValidationFailed("confirmPassword", "passwords do not match")
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}
	for _, u := range users {
		if u.Username == username {
			return nil, apperror.Conflict("username already exists")
		}
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	user := model.User{
		ID:           model.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("service/auth: saving users: %w", err)
	}

	s.logger.Info("user signed up",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return &user, nil
}

// LoginResult bundles what the handler needs to finish a login: the
// user for the response body, the token for the cookie, and the
// remember flag that decides the cookie's persistence.
type LoginResult struct {
	User     *model.User
	Token    string
	Remember bool
}

// Login checks the credentials and opens a session.
//
// Unknown username and wrong password return the same error — the
// response must not reveal which half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}

	var user *model.User
	for i := range users {
		if users[i].Username == username {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	session, err := s.sessions.Create(ctx, user.ID, remember)
	if err != nil {
		return nil, fmt.Errorf("service/auth: creating session: %w", err)
	}

	lifetime := SessionTokenLifetime
	if remember {
		lifetime = RememberedTokenLifetime
	}
	token, err := s.tokens.Generate(user.ID, session.ID, lifetime)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token: %w", err)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
		slog.Bool("remember", remember),
	)
	return &LoginResult{User: user, Token: token, Remember: remember}, nil
}

// Logout ends the session named inside the token. An invalid or
// expired token is not an error — the handler clears the cookie either
// way, and logout must be idempotent.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	_, sessionID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service/auth: deleting session: %w", err)
	}
	return nil
}

// GetUserByID returns the user record for /api/auth/me.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, apperror.NotFound("user", id)
}
