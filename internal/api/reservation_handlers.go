package api

import (
	"encoding/json"
	"net/http"

	"smartparking/internal/db"
	"smartparking/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vt, ok := db.ParseVehicleType(req.VehicleType)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "unknown vehicle_type")
		return
	}
	if req.ValidityHours <= 0 {
		writeFailure(w, http.StatusBadRequest, "validity_hours must be positive")
		return
	}

	reservation, err := h.Service.Create(req.CustomerID, vt, req.ValidityHours)
	if err != nil {
		writeError(w, err)
		return
	}
	if reservation == nil {
		writeFailure(w, http.StatusConflict, "no parking space available for this vehicle type")
		return
	}
	writeOK(w, "reservation created", reservation)
}

func (h *ReservationHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.ListActive()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "active reservations", reservations)
}
