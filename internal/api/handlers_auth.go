// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/validation"
)

const (
	msgSignupRequired     = "Name, email, and password are required"
	msgInvalidEmail       = "Please provide a valid email address"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgEmailRegistered    = "User with this email already exists"
	msgLoginRequired      = "Email and password are required"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		badRequest(w, r, signupMessage(verr))
		return
	}

	hash, err := auth.HashPassword(req.Password, h.config.Security.BcryptCost)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, msgInternal, err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.Name, req.Email, hash, models.RoleUser)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{conflict: msgEmailRegistered})
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, msgInternal, err)
		return
	}

	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeSignup, audit.OutcomeSuccess, "Account created").
		WithActor(user.ID, user.Email, user.Role))
	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User signed up")
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// signupMessage reports the first failed rule in the wording clients see.
func signupMessage(verr *validation.RequestValidationError) string {
	errs := verr.Errors()
	if len(errs) == 0 {
		return msgSignupRequired
	}
	switch first := errs[0]; {
	case first.Tag() == "required" || first.Tag() == "notblank":
		return msgSignupRequired
	case first.Field() == "email":
		return msgInvalidEmail
	case first.Field() == "password":
		return msgPasswordTooShort
	default:
		return first.Error()
	}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		badRequest(w, r, msgLoginRequired)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeLoginFailure, audit.OutcomeFailure, "Invalid email or password").
			WithMetadata(map[string]string{"email": req.Email}))
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, msgInvalidCredentials, nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, msgInternal, err)
		return
	}
	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeLoginSuccess, audit.OutcomeSuccess, "Login").
		WithActor(user.ID, user.Email, user.Role))
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.db.GetUserByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgUserNotFound})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
