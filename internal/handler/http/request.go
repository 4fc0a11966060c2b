package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultPageSize = 50

// requestMeta captures the client address and user agent for the audit sink.
func requestMeta(r *http.Request) models.RequestMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}

	return models.RequestMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// pathID parses the {id} route parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// pagination reads the limit/offset query parameters, falling back to
// [defaultPageSize] for an absent or unparsable limit.
func pagination(r *http.Request) (limit, offset uint64) {
	limit = defaultPageSize
	if v, err := strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.ParseUint(r.URL.Query().Get("offset"), 10, 64); err == nil {
		offset = v
	}
	return limit, offset
}

// currentUser returns the authenticated user stashed by the auth middleware.
func currentUser(r *http.Request) (models.User, bool) {
	user, ok := utils.GetCurrentUserFromContext(r.Context())
	if !ok || user == nil {
		return models.User{}, false
	}
	return *user, true
}

// writeError maps err to its HTTP status and writes the uniform error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromRequest(r).Err(err).Msg(msg)
	utils.WriteJSON(w, models.ErrorResponse{Error: msg}, statusFromError(err))
}
