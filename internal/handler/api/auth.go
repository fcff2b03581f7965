// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/store"
)

// loginFailedMessage is shared by every login failure so responses
// never reveal whether the username exists.
const loginFailedMessage = "Invalid username or password"

// dummyPasswordHash is verified against when the username is unknown,
// keeping the work done comparable to a real check.
const dummyPasswordHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$c2lnbnBvc3Qtbm90LWEtcmVhbC1oYXNo"

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful token-mode login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      LoginUser `json:"user"`
}

// LoginUser is the user summary embedded in a login response.
type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CredentialsLoginResponse is returned on successful credentials-mode
// login. There is no token; the client only learns the pair matched.
type CredentialsLoginResponse struct {
	Success bool `json:"success"`
}

// Login handles POST /api/admin/login (rate-limited).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.Username == "" {
		validationErrors["username"] = "Username is required"
	}
	if req.Password == "" {
		validationErrors["password"] = "Password is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	if h.cfg.TokenAuth() {
		h.loginWithToken(w, r, req)
		return
	}
	h.loginWithCredentials(w, req)
}

// loginWithCredentials compares the submitted pair against the
// configured admin credentials in constant time.
func (h *Handler) loginWithCredentials(w http.ResponseWriter, req LoginRequest) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		WriteUnauthorized(w, loginFailedMessage)
		return
	}

	WriteSuccess(w, CredentialsLoginResponse{Success: true})
}

// loginWithToken verifies the password hash for the stored user and
// issues a signed bearer token.
func (h *Handler) loginWithToken(w http.ResponseWriter, r *http.Request, req LoginRequest) {
	ctx := r.Context()

	user, err := h.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time before rejecting.
			_, _ = auth.CheckPassword(req.Password, dummyPasswordHash)
			WriteUnauthorized(w, loginFailedMessage)
		} else {
			WriteInternalError(w, "Failed to process login")
		}
		return
	}

	match, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		WriteUnauthorized(w, loginFailedMessage)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		WriteInternalError(w, "Failed to issue token")
		return
	}

	if err := h.store.UpdateUserLastLogin(ctx, user.ID, time.Now()); err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	WriteSuccess(w, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.TTL()),
		User: LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}
