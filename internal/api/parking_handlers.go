package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"smartparking/internal/db"
	"smartparking/internal/service"
)

type ParkingHandler struct {
	Service *service.ParkingService
}

func NewParkingHandler(svc *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{Service: svc}
}

func (h *ParkingHandler) Park(w http.ResponseWriter, r *http.Request) {
	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LicensePlate == "" {
		writeFailure(w, http.StatusBadRequest, "license_plate is required")
		return
	}
	vt, ok := db.ParseVehicleType(req.VehicleType)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "unknown vehicle_type")
		return
	}

	ticket, err := h.Service.Park(req.LicensePlate, vt, req.Contact, req.CustomerID, req.ReservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	if ticket == nil {
		writeFailure(w, http.StatusConflict, "no parking space available for this vehicle type")
		return
	}
	writeOK(w, "vehicle parked", ticket)
}

func (h *ParkingHandler) ExitPreview(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	preview, err := h.Service.ExitPreview(ticketID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "exit preview", map[string]any{
		"amount":       preview.Amount,
		"hours":        preview.Hours,
		"is_weekend":   preview.Weekend,
		"has_discount": preview.DiscountEligible,
	})
}

func (h *ParkingHandler) ExitFinalize(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	method, ok := db.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "unknown payment_method")
		return
	}

	result, err := h.Service.ExitFinalize(ticketID, method, req.PaymentDetails, req.CashReceived)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ticket paid", map[string]any{
		"ticket":           result.Ticket,
		"amount":           result.Amount,
		"change":           result.ChangeReturned,
		"discount_applied": result.DiscountApplied,
		"points_earned":    result.PointsEarned,
	})
}

func (h *ParkingHandler) ActiveTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Service.ActiveTickets()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "active tickets", tickets)
}

func (h *ParkingHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Contact == "" || req.Email == "" {
		writeFailure(w, http.StatusBadRequest, "name, contact and email are required")
		return
	}

	customer, err := h.Service.RegisterCustomer(req.Name, req.Contact, req.Email, req.Handicapped)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "customer registered", customer)
}

func (h *ParkingHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if contact := r.URL.Query().Get("contact"); contact != "" {
		customer, err := h.Service.FindCustomerByContact(contact)
		if err != nil {
			writeError(w, err)
			return
		}
		if customer == nil {
			writeFailure(w, http.StatusNotFound, "customer not found")
			return
		}
		writeOK(w, "customer", customer)
		return
	}

	customers, err := h.Service.Customers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "customers", customers)
}
