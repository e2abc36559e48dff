package api

import (
	"github.com/gorilla/mux"
)

func NewRouter(parking *ParkingHandler, reservations *ReservationHandler, reports *ReportHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/customers", parking.RegisterCustomer).Methods("POST")
	r.HandleFunc("/api/customers", parking.ListCustomers).Methods("GET")

	r.HandleFunc("/api/park", parking.Park).Methods("POST")
	r.HandleFunc("/api/tickets", parking.ActiveTickets).Methods("GET")
	r.HandleFunc("/api/tickets/{id}/preview", parking.ExitPreview).Methods("GET")
	r.HandleFunc("/api/tickets/{id}/exit", parking.ExitFinalize).Methods("POST")

	r.HandleFunc("/api/reservations", reservations.Create).Methods("POST")
	r.HandleFunc("/api/reservations", reservations.ListActive).Methods("GET")

	r.HandleFunc("/api/reports/availability", reports.Availability).Methods("GET")
	r.HandleFunc("/api/reports/floors", reports.SpacesByFloor).Methods("GET")
	r.HandleFunc("/api/reports/revenue", reports.Revenue).Methods("GET")

	return r
}
