package api

import (
	"encoding/json"
	"net/http"

	"smartparking/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, message string, payload any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Payload: payload})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeError maps engine errors onto HTTP statuses. Invalid transitions are
// programming invariant violations and render as internal errors.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errs.Is(err, errs.ErrTicketNotFound),
		errs.Is(err, errs.ErrReservationNotFound),
		errs.Is(err, errs.ErrCustomerNotFound),
		errs.Is(err, errs.ErrSpaceNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errs.Is(err, errs.ErrInsufficientCash):
		writeFailure(w, http.StatusPaymentRequired, err.Error())
	case errs.Is(err, errs.ErrTicketNotActive):
		writeFailure(w, http.StatusConflict, err.Error())
	default:
		writeFailure(w, http.StatusInternalServerError, "internal error")
	}
}
