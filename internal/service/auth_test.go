package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/auth"
	"github.com/sakif/shop-ledger/internal/store"
	"github.com/sakif/shop-ledger/internal/store/memory"
)

// authFixture wires a real AuthService over in-memory scopes. bcrypt
// runs at its minimum cost so the suite stays fast.
type authFixture struct {
	svc       *AuthService
	durable   *store.Collections
	ephemeral *store.Collections
	sessions  *auth.SessionStore
	tokens    *auth.TokenService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	durable := store.NewCollections(memory.New())
	ephemeral := store.NewCollections(memory.New())
	sessions := auth.NewSessionStore(durable, ephemeral)
	tokens, err := auth.NewTokenService("test-secret-test-secret")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewAuthService(durable, sessions, tokens, auth.NewPasswordServiceForTest(4), testLogger())
	return &authFixture{
		svc:       svc,
		durable:   durable,
		ephemeral: ephemeral,
		sessions:  sessions,
		tokens:    tokens,
	}
}

const goodPassword = "Secret123!"

func (f *authFixture) signup(t *testing.T, username string) {
	t.Helper()
	if _, err := f.svc.Signup(context.Background(), username, username+"@example.com", goodPassword, goodPassword); err != nil {
		t.Fatalf("Signup(%q): %v", username, err)
	}
}

// =========================================================================
// SIGNUP TESTS
// =========================================================================

func TestSignup_CreatesUserWithHashedPassword(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.svc.Signup(context.Background(), "sakif", "sakif@example.com", goodPassword, goodPassword)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("user was not assigned an ID")
	}
	if user.PasswordHash == goodPassword || user.PasswordHash == "" {
		t.Error("password was not hashed")
	}

	users, _ := f.durable.Users(context.Background())
	if len(users) != 1 {
		t.Fatalf("stored users = %d, want 1", len(users))
	}
}

func TestSignup_TrimsWhitespace(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.svc.Signup(context.Background(), "  sakif  ", " sakif@example.com ", goodPassword, goodPassword)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.Username != "sakif" {
		t.Errorf("Username = %q, want trimmed", user.Username)
	}
}

func TestSignup_DuplicateUsernameAppendsNothing(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	_, err := f.svc.Signup(context.Background(), "sakif", "other@example.com", goodPassword, goodPassword)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	users, _ := f.durable.Users(context.Background())
	if len(users) != 1 {
		t.Errorf("stored users = %d, want 1 (duplicate must not append)", len(users))
	}
}

func TestSignup_Validation(t *testing.T) {
	f := newAuthFixture(t)

	cases := []struct {
		name                              string
		username, email, password, confirm string
	}{
		{"short username", "ab", "a@b.co", goodPassword, goodPassword},
		{"bad email", "sakif", "not-an-email", goodPassword, goodPassword},
		{"weak password", "sakif", "sakif@example.com", "abc", "abc"},
		{"confirm mismatch", "sakif", "sakif@example.com", goodPassword, "Different123!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Signup(context.Background(), tc.username, tc.email, tc.password, tc.confirm)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Succeeds(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	res, err := f.svc.Login(context.Background(), "sakif", goodPassword, false)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token == "" {
		t.Error("Login() returned empty token")
	}

	// The token must name a live session.
	_, sessionID, err := f.tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("Validate(token): %v", err)
	}
	if _, ok, _ := f.sessions.Lookup(context.Background(), sessionID); !ok {
		t.Error("login did not register a session")
	}
}

func TestLogin_WrongCredentialsAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	_, errUnknown := f.svc.Login(context.Background(), "nobody", goodPassword, false)
	_, errWrongPw := f.svc.Login(context.Background(), "sakif", "Wrong123!", false)

	if !errors.Is(errUnknown, apperror.ErrUnauthorized) {
		t.Errorf("unknown user error = %v, want ErrUnauthorized", errUnknown)
	}
	if !errors.Is(errWrongPw, apperror.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", errWrongPw)
	}

	var a, b *apperror.AppError
	if errors.As(errUnknown, &a) && errors.As(errWrongPw, &b) && a.Message != b.Message {
		t.Errorf("messages differ: %q vs %q — must not reveal which half was wrong", a.Message, b.Message)
	}
}

func TestLogin_RememberPicksDurableScope(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	if _, err := f.svc.Login(context.Background(), "sakif", goodPassword, true); err != nil {
		t.Fatalf("Login(remember) error = %v", err)
	}

	durable, _ := f.durable.Sessions(context.Background())
	ephemeral, _ := f.ephemeral.Sessions(context.Background())
	if len(durable) != 1 || len(ephemeral) != 0 {
		t.Errorf("sessions durable=%d ephemeral=%d, want 1/0", len(durable), len(ephemeral))
	}
}

func TestLogin_OneTimePicksEphemeralScope(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	if _, err := f.svc.Login(context.Background(), "sakif", goodPassword, false); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	durable, _ := f.durable.Sessions(context.Background())
	ephemeral, _ := f.ephemeral.Sessions(context.Background())
	if len(durable) != 0 || len(ephemeral) != 1 {
		t.Errorf("sessions durable=%d ephemeral=%d, want 0/1", len(durable), len(ephemeral))
	}
}

// =========================================================================
// LOGOUT TESTS
// =========================================================================

func TestLogout_RevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")

	res, err := f.svc.Login(context.Background(), "sakif", goodPassword, true)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := f.svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	_, sessionID, _ := f.tokens.Validate(res.Token)
	if _, ok, _ := f.sessions.Lookup(context.Background(), sessionID); ok {
		t.Error("session survived logout")
	}
}

func TestLogout_GarbageTokenIsNoop(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Logout(context.Background(), "not-a-jwt"); err != nil {
		t.Errorf("Logout(garbage) error = %v, want nil", err)
	}
}

func TestGetUserByID(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "sakif")
	users, _ := f.durable.Users(context.Background())

	got, err := f.svc.GetUserByID(context.Background(), users[0].ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Username != "sakif" {
		t.Errorf("Username = %q, want sakif", got.Username)
	}

	if _, err := f.svc.GetUserByID(context.Background(), 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}
}
