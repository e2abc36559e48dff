package service

import (
	"smartparking/internal/db"
	"smartparking/internal/repository"
)

// ReportService is a read-only aggregation over the space registry and
// ticket records. No method here mutates state.
type ReportService struct {
	store *repository.Store
}

func NewReportService(store *repository.Store) *ReportService {
	return &ReportService{store: store}
}

type AvailabilityStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type RevenueReport struct {
	TotalRevenue     float64                      `json:"total_revenue"`
	TotalTickets     int                          `json:"total_tickets"`
	AverageAmount    float64                      `json:"average_amount"`
	PaymentBreakdown map[db.PaymentMethod]float64 `json:"payment_breakdown"`
}

// Availability returns per-vehicle-type space counts.
func (s *ReportService) Availability() (map[db.VehicleType]AvailabilityStats, error) {
	availability := make(map[db.VehicleType]AvailabilityStats, len(db.VehicleTypes))
	for _, vt := range db.VehicleTypes {
		all, err := s.store.Spaces.FindByType(vt)
		if err != nil {
			return nil, err
		}
		available, err := s.store.Spaces.FindByStatusAndType(db.SpaceAvailable, vt)
		if err != nil {
			return nil, err
		}
		occupied, err := s.store.Spaces.FindByStatusAndType(db.SpaceOccupied, vt)
		if err != nil {
			return nil, err
		}
		availability[vt] = AvailabilityStats{
			Total:     len(all),
			Available: len(available),
			Occupied:  len(occupied),
		}
	}
	return availability, nil
}

// SpacesByFloor groups every space by floor number.
func (s *ReportService) SpacesByFloor() (map[int][]*db.ParkingSpace, error) {
	spaces, err := s.store.Spaces.FindAll()
	if err != nil {
		return nil, err
	}
	floors := make(map[int][]*db.ParkingSpace)
	for _, space := range spaces {
		floors[space.Floor] = append(floors[space.Floor], space)
	}
	return floors, nil
}

// RevenueReport totals PAID tickets with a per-payment-method breakdown.
// The average divides by max(1, count) to guard an empty report.
func (s *ReportService) RevenueReport() (*RevenueReport, error) {
	paid, err := s.store.Tickets.FindByStatus(db.TicketPaid)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[db.PaymentMethod]float64, len(db.PaymentMethods))
	for _, method := range db.PaymentMethods {
		breakdown[method] = 0
	}

	var total float64
	for _, t := range paid {
		total += t.Amount
		breakdown[t.PaymentMethod] += t.Amount
	}

	count := len(paid)
	divisor := count
	if divisor < 1 {
		divisor = 1
	}
	return &RevenueReport{
		TotalRevenue:     total,
		TotalTickets:     count,
		AverageAmount:    total / float64(divisor),
		PaymentBreakdown: breakdown,
	}, nil
}
