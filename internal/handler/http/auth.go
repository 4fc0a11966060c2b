package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

// login authenticates a user by username or email and issues a token pair.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.writeError(w, r, err, "invalid data provided")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.writeError(w, r, err, "invalid login/password")
		case errors.Is(err, service.ErrAccountSuspended):
			h.writeError(w, r, err, "account is suspended")
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	log.Debug().Str("user_id", resp.User.ID.String()).Msg("user successfully logged in")

	utils.WriteJSON(w, resp, http.StatusOK)
}

// logout invalidates the session identified by the "X-Refresh-Token" header.
// The refresh token travels in its own header so that the access token in
// "Authorization" stays untouched by the session teardown.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	refreshToken := r.Header.Get("X-Refresh-Token")
	if refreshToken == "" {
		h.writeError(w, r, ErrMissingRefreshTokenHeader, ErrMissingRefreshTokenHeader.Error())
		return
	}

	if err := h.services.AuthService.Logout(ctx, actor, refreshToken, requestMeta(r)); err != nil {
		h.writeError(w, r, err, "logout failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}

// refresh exchanges a valid refresh token for a fresh access token.
// The endpoint is unauthenticated on purpose: the access token being
// refreshed is usually already expired.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		h.writeError(w, r, service.ErrRefreshTokenMissing, "refresh token is required")
		return
	}

	resp, err := h.services.AuthService.Refresh(ctx, req.RefreshToken, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrExpiredRefreshToken):
			h.writeError(w, r, err, "invalid or expired refresh token")
		case errors.Is(err, service.ErrTokenIsExpired), errors.Is(err, service.ErrTokenIsInvalid):
			h.writeError(w, r, err, "invalid or expired refresh token")
		default:
			log.Err(err).Msg("unexpected error occurred during token refresh")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
