package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"spendtrack/internal/domain"
	"spendtrack/internal/middleware"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account. The password hash never appears in the response.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		a.handleError(w, r, err, "User not found")
		return
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		a.handleError(w, r, err, "User not found")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User created",
		"user":    toUserDTO(user),
	})
}

// Signin verifies credentials and issues a bearer token.
func (a *App) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		a.fail(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		a.handleError(w, r, err, "User not found")
		return
	}
	if !user.CheckPassword(req.Password) {
		a.fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Email:    user.Email,
		UID:      user.ID,
		Exp:      time.Now().Add(a.TokenTTL).Unix(),
		Issuer:   "spendtrack",
		Audience: "spendtrack-clients",
	})
	if err != nil {
		a.handleError(w, r, err, "User not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Signed in",
		"user_token": token,
		"user":       toUserDTO(user),
	})
}

// Me returns the authenticated account.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)
	if email == "" {
		a.fail(w, http.StatusUnauthorized, "Missing Bearer token")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.fail(w, http.StatusNotFound, "User not found")
			return
		}
		a.handleError(w, r, err, "User not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}
