package http

import (
	"encoding/json"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

// createUser registers a new user account. The endpoint is open; the first
// account a deployment registers is usually the bootstrap superuser.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.CreateUser(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "user registration failed")
		return
	}

	log.Debug().Str("user_id", user.ID.String()).Msg("user successfully registered")

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err, "user lookup failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	limit, offset := pagination(r)
	users, err := h.services.UserService.ListUsers(r.Context(), actor, limit, offset)
	if err != nil {
		h.writeError(w, r, err, "user listing failed")
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), actor, id, patch)
	if err != nil {
		h.writeError(w, r, err, "user update failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), actor, id, requestMeta(r)); err != nil {
		h.writeError(w, r, err, "user deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "User deleted"}, http.StatusOK)
}
