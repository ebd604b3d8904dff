package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/pricing"
	"rentwheels-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	CustomerID      int64    `json:"customer_id"`
	VehicleID       int64    `json:"vehicle_id"`
	PackageID       *int64   `json:"package_id,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	RateType        string   `json:"rate_type,omitempty"`
	DepositAmount   float64  `json:"deposit_amount"`
	ManualUnitPrice *float64 `json:"manual_unit_price,omitempty"`
}

type recordReturnRequest struct {
	OdometerInKm float64 `json:"odometer_in_km"`
}

type recordReturnResponse struct {
	Rental *domain.Rental        `json:"rental"`
	Audit  *pricing.OverageAudit `json:"overage_audit"`
}

func decodeRentalInput(r *http.Request) (service.CreateRentalInput, error) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return service.CreateRentalInput{}, errors.New("invalid request body")
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return service.CreateRentalInput{}, errors.New("invalid start_date, expected RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return service.CreateRentalInput{}, errors.New("invalid end_date, expected RFC 3339")
	}

	return service.CreateRentalInput{
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		PackageID:       req.PackageID,
		StartDate:       start,
		EndDate:         end,
		RateType:        domain.RateType(req.RateType),
		DepositAmount:   req.DepositAmount,
		ManualUnitPrice: req.ManualUnitPrice,
	}, nil
}

func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	input, err := decodeRentalInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	quote, err := h.rentals.QuoteRental(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeRentalInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	rental, err := h.rentals.CreateRental(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	rental, err := h.rentals.GetRental(r.Context(), rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
	status := r.URL.Query().Get("status")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	rentals, total, err := h.rentals.ListRentals(r.Context(), customerID, status, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rentals": rentals,
		"total":   total,
	})
}

func (h *RentalHandler) RecordReturn(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	var req recordReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	rental, audit, err := h.rentals.RecordReturn(r.Context(), rentalID, req.OdometerInKm)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordReturnResponse{Rental: rental, Audit: audit})
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
