package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentwheels-backend/internal/domain"
)

type errorResponse struct {
	Error               string   `json:"error"`
	Code                string   `json:"code,omitempty"`
	RequiresManualEntry bool     `json:"requires_manual_entry,omitempty"`
	Stored              *float64 `json:"stored,omitempty"`
	Computed            *float64 `json:"computed,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var inconsistency *domain.DataInconsistencyError
	if errors.As(err, &inconsistency) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    inconsistency.Error(),
			Code:     "DATA_INCONSISTENCY",
			Stored:   &inconsistency.Stored,
			Computed: &inconsistency.Computed,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, "duration must be greater than zero", domain.ErrorCodeInvalidDuration)
	case errors.Is(err, domain.ErrNoBasePrice):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:               "no base price configured, manual price required",
			Code:                domain.ErrorCodeNoBasePriceConfigured,
			RequiresManualEntry: true,
		})
	case errors.Is(err, domain.ErrAlreadyApproved):
		writeError(w, http.StatusConflict, "extension already approved", "ALREADY_APPROVED")
	case errors.Is(err, domain.ErrInvalidStateTransition):
		writeError(w, http.StatusConflict, "invalid state transition", "INVALID_STATE_TRANSITION")
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}
