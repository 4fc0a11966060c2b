package http

import (
	"encoding/json"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

func (h *Handler) createAPIKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	key, err := h.services.APIKeyService.CreateAPIKey(r.Context(), actor, req)
	if err != nil {
		h.writeError(w, r, err, "api key creation failed")
		return
	}

	utils.WriteJSON(w, key, http.StatusCreated)
}

func (h *Handler) getAPIKey(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid api key id", http.StatusBadRequest)
		return
	}

	key, err := h.services.APIKeyService.GetAPIKey(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err, "api key lookup failed")
		return
	}

	utils.WriteJSON(w, key, http.StatusOK)
}

func (h *Handler) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	keys, err := h.services.APIKeyService.ListAPIKeys(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err, "api key listing failed")
		return
	}

	utils.WriteJSON(w, keys, http.StatusOK)
}

func (h *Handler) updateAPIKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid api key id", http.StatusBadRequest)
		return
	}

	var patch models.APIKeyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	key, err := h.services.APIKeyService.UpdateAPIKey(r.Context(), actor, id, patch)
	if err != nil {
		h.writeError(w, r, err, "api key update failed")
		return
	}

	utils.WriteJSON(w, key, http.StatusOK)
}

func (h *Handler) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid api key id", http.StatusBadRequest)
		return
	}

	if err := h.services.APIKeyService.DeleteAPIKey(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err, "api key deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "API key deleted"}, http.StatusOK)
}
