package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

type ExtensionHandler struct {
	extensions service.ExtensionService
}

func NewExtensionHandler(extensions service.ExtensionService) *ExtensionHandler {
	return &ExtensionHandler{extensions: extensions}
}

type quoteExtensionRequest struct {
	Hours float64 `json:"hours"`
}

type createExtensionRequest struct {
	Hours       float64  `json:"hours"`
	ManualPrice *float64 `json:"manual_price,omitempty"`
}

func (h *ExtensionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	var req quoteExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	quote, err := h.extensions.CalculatePrice(r.Context(), rentalID, req.Hours)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *ExtensionHandler) Create(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	var req createExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	claims := ClaimsFrom(r.Context())
	ext, err := h.extensions.CreateRequest(r.Context(), domain.ExtensionRequest{
		RentalID:    rentalID,
		Hours:       req.Hours,
		ManualPrice: req.ManualPrice,
		RequestedBy: claims.UserID,
		AutoApprove: canApprove(claims),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ext)
}

func (h *ExtensionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if !canApprove(claims) {
		writeError(w, http.StatusForbidden, "approval requires manager role", "")
		return
	}

	extensionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid extension id", "")
		return
	}

	ext, rental, err := h.extensions.Approve(r.Context(), extensionID, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"extension": ext,
		"rental":    rental,
	})
}

func (h *ExtensionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if !canApprove(claims) {
		writeError(w, http.StatusForbidden, "rejection requires manager role", "")
		return
	}

	extensionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid extension id", "")
		return
	}

	ext, err := h.extensions.Reject(r.Context(), extensionID, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"extension": ext,
	})
}

func (h *ExtensionHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	exts, err := h.extensions.ListByRental(r.Context(), rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"extensions": exts})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
