package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/shop-ledger/internal/auth"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/service"
)

// AuthHandler exposes signup, login, logout, and the current-user
// endpoint. It owns the cookie mechanics; the AuthService owns the
// rules.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// userView is the API shape of a user: everything except the password
// hash, which never leaves the server.
type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func viewOf(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email}
}

// HandleSignup creates an account.
//
// HTTP: POST /api/auth/signup
// BODY: {"username":"...","email":"...","password":"...","confirmPassword":"..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(user))
}

// HandleLogin checks credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
// BODY: {"username":"...","password":"...","remember":true}
//
// REMEMBER-ME AND COOKIE PERSISTENCE:
// A cookie without MaxAge is a "session cookie" — the browser drops it
// when it closes. That is exactly the non-remembered behaviour, so the
// remember flag decides whether MaxAge is set at all.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		writeError(w, err)
		return
	}

	cookie := &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	}
	if result.Remember {
		cookie.MaxAge = int(service.RememberedTokenLifetime / time.Second)
	}
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, viewOf(result.User))
}

// HandleLogout ends the session and deletes the cookie.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.TokenCookie); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	// MaxAge -1 tells the browser to delete the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/auth/me (behind RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(user))
}
