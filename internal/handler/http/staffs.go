package http

import (
	"encoding/json"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	staff, err := h.services.StaffService.CreateStaff(r.Context(), actor, req, requestMeta(r))
	if err != nil {
		h.writeError(w, r, err, "staff creation failed")
		return
	}

	log.Debug().Str("staff_id", staff.ID.String()).Str("role", string(staff.Role)).Msg("staff profile created")

	utils.WriteJSON(w, staff, http.StatusCreated)
}

func (h *Handler) getStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}

	staff, err := h.services.StaffService.GetStaff(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err, "staff lookup failed")
		return
	}

	utils.WriteJSON(w, staff, http.StatusOK)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	limit, offset := pagination(r)
	staffs, err := h.services.StaffService.ListStaff(r.Context(), actor, limit, offset)
	if err != nil {
		h.writeError(w, r, err, "staff listing failed")
		return
	}

	utils.WriteJSON(w, staffs, http.StatusOK)
}

func (h *Handler) updateStaff(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}

	var patch models.StaffPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	staff, err := h.services.StaffService.UpdateStaff(r.Context(), actor, id, patch, requestMeta(r))
	if err != nil {
		h.writeError(w, r, err, "staff update failed")
		return
	}

	utils.WriteJSON(w, staff, http.StatusOK)
}

func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}

	if err := h.services.StaffService.DeleteStaff(r.Context(), actor, id, requestMeta(r)); err != nil {
		h.writeError(w, r, err, "staff deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Staff profile deleted"}, http.StatusOK)
}
