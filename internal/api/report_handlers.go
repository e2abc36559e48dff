package api

import (
	"net/http"

	"smartparking/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

func (h *ReportHandler) Availability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.Service.Availability()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "availability", availability)
}

func (h *ReportHandler) SpacesByFloor(w http.ResponseWriter, r *http.Request) {
	floors, err := h.Service.SpacesByFloor()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "spaces by floor", floors)
}

func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.RevenueReport()
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "revenue report", report)
}
