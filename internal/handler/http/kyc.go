package http

import (
	"encoding/json"
	"net/http"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
)

// reviewKYCRequest is the payload of POST /api/kyc/{id}/review.
type reviewKYCRequest struct {
	Status models.KYCStatus `json:"status"`
	Notes  string           `json:"kyc_notes,omitempty"`
}

// submitKYC files a new identity-verification submission for the
// authenticated user.
func (h *Handler) submitKYC(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SubmitKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verification, err := h.services.KYCService.SubmitKYC(r.Context(), actor, req, requestMeta(r))
	if err != nil {
		h.writeError(w, r, err, "kyc submission failed")
		return
	}

	log.Debug().Str("kyc_id", verification.ID.String()).Msg("kyc submission filed")

	utils.WriteJSON(w, verification, http.StatusCreated)
}

// latestKYC returns the newest submission of the authenticated user.
func (h *Handler) latestKYC(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	verification, err := h.services.KYCService.GetLatestKYC(r.Context(), actor, actor.ID)
	if err != nil {
		h.writeError(w, r, err, "kyc lookup failed")
		return
	}

	utils.WriteJSON(w, verification, http.StatusOK)
}

// listKYC returns the full submission history for the user in the path.
// Viewing another user's history requires a reviewer role.
func (h *Handler) listKYC(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	userID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	verifications, err := h.services.KYCService.ListKYC(r.Context(), actor, userID)
	if err != nil {
		h.writeError(w, r, err, "kyc listing failed")
		return
	}

	utils.WriteJSON(w, verifications, http.StatusOK)
}

// reviewKYC records a reviewer's verdict on a pending submission.
func (h *Handler) reviewKYC(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid kyc id", http.StatusBadRequest)
		return
	}

	var req reviewKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verification, err := h.services.KYCService.ReviewKYC(r.Context(), actor, id, req.Status, req.Notes, requestMeta(r))
	if err != nil {
		h.writeError(w, r, err, "kyc review failed")
		return
	}

	log.Debug().Str("kyc_id", verification.ID.String()).Str("status", string(verification.Status)).Msg("kyc submission reviewed")

	utils.WriteJSON(w, verification, http.StatusOK)
}
