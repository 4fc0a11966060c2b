package http

import (
	"net/http"
	"time"

	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// listActivityLogs serves the gated read side of the audit trail. Filters
// come in as query parameters: user_id, activity_type, since, until
// (RFC 3339), limit and offset.
func (h *Handler) listActivityLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter, err := activityLogFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := h.services.ActivityService.List(r.Context(), actor, filter)
	if err != nil {
		h.writeError(w, r, err, "activity log listing failed")
		return
	}

	utils.WriteJSON(w, logs, http.StatusOK)
}

func activityLogFilter(r *http.Request) (models.ActivityLogFilter, error) {
	query := r.URL.Query()

	var filter models.ActivityLogFilter
	filter.ActivityType = query.Get("activity_type")
	filter.Limit, filter.Offset = pagination(r)

	if raw := query.Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return models.ActivityLogFilter{}, err
		}
		filter.UserID = &id
	}

	if raw := query.Get("since"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.ActivityLogFilter{}, err
		}
		filter.Since = &ts
	}

	if raw := query.Get("until"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.ActivityLogFilter{}, err
		}
		filter.Until = &ts
	}

	return filter, nil
}
