package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

// auth is the HTTP middleware gating every protected endpoint.
//
// It extracts the bearer token from the "Authorization" header, validates
// it via [service.AuthService.ParseToken], resolves the token's subject to
// a live user record and checks the account status. On success the user ID
// and the full user record land in the request context under
// [utils.UserIDCtxKey] and [utils.CurrentUserCtxKey].
//
// Rejections:
//   - 401 if the header is absent or malformed, or the token is expired or invalid.
//   - 404 if the token verifies but its subject no longer exists.
//   - 403 if the subject exists but its status is not ACTIVE.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, service.ErrTokenIsExpired.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		user, err := h.services.UserService.FindByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Err(err).Str("user_id", token.UserID.String()).Msg("token subject no longer exists")
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			log.Err(err).Msg("error occurred during user lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if user.Status != models.StatusActive {
			log.Warn().Str("user_id", user.ID.String()).Str("status", string(user.Status)).Msg("account is not active")
			http.Error(w, service.ErrAccountNotActive.Error(), http.StatusForbidden)
			return
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.CurrentUserCtxKey, &user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
