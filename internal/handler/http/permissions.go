package http

import (
	"encoding/json"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

func (h *Handler) createPermission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	permission, err := h.services.PermissionService.CreatePermission(r.Context(), actor, req)
	if err != nil {
		h.writeError(w, r, err, "permission creation failed")
		return
	}

	utils.WriteJSON(w, permission, http.StatusCreated)
}

func (h *Handler) getPermission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid permission id", http.StatusBadRequest)
		return
	}

	permission, err := h.services.PermissionService.GetPermission(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "permission lookup failed")
		return
	}

	utils.WriteJSON(w, permission, http.StatusOK)
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.services.PermissionService.ListPermissions(r.Context())
	if err != nil {
		h.writeError(w, r, err, "permission listing failed")
		return
	}

	utils.WriteJSON(w, permissions, http.StatusOK)
}

func (h *Handler) renamePermission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid permission id", http.StatusBadRequest)
		return
	}

	var req models.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	permission, err := h.services.PermissionService.RenamePermission(r.Context(), actor, id, req.Name)
	if err != nil {
		h.writeError(w, r, err, "permission rename failed")
		return
	}

	utils.WriteJSON(w, permission, http.StatusOK)
}

func (h *Handler) deletePermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid permission id", http.StatusBadRequest)
		return
	}

	if err := h.services.PermissionService.DeletePermission(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err, "permission deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Permission deleted"}, http.StatusOK)
}
