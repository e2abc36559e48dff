package db

import (
	"strings"
	"time"

	"smartparking/internal/errs"
)

type VehicleType string

const (
	VehicleBike  VehicleType = "BIKE"
	VehicleCar   VehicleType = "CAR"
	VehicleTruck VehicleType = "TRUCK"
)

// VehicleTypes lists every supported type in a fixed order, used by
// reporting so availability breakdowns are stable.
var VehicleTypes = []VehicleType{VehicleBike, VehicleCar, VehicleTruck}

func ParseVehicleType(s string) (VehicleType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BIKE", "MOTORCYCLE":
		return VehicleBike, true
	case "CAR":
		return VehicleCar, true
	case "TRUCK":
		return VehicleTruck, true
	}
	return "", false
}

type SpaceStatus string

const (
	SpaceAvailable SpaceStatus = "AVAILABLE"
	SpaceOccupied  SpaceStatus = "OCCUPIED"
	SpaceReserved  SpaceStatus = "RESERVED"
)

type TicketStatus string

const (
	TicketActive TicketStatus = "ACTIVE"
	TicketPaid   TicketStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentUPI  PaymentMethod = "UPI"
)

// PaymentMethods in fixed order for revenue breakdowns.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentUPI}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CASH":
		return PaymentCash, true
	case "CARD":
		return PaymentCard, true
	case "UPI":
		return PaymentUPI, true
	}
	return "", false
}

type Vehicle struct {
	LicensePlate string      `json:"license_plate"`
	Type         VehicleType `json:"type"`
	OwnerContact string      `json:"owner_contact"`
}

type Customer struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Contact       string    `json:"contact"`
	Email         string    `json:"email"`
	Handicapped   bool      `json:"handicapped"`
	LoyaltyPoints int       `json:"loyalty_points"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// HasLoyaltyDiscount reports whether the customer qualifies for the flat
// loyalty discount (balance of at least 100 points).
func (c *Customer) HasLoyaltyDiscount() bool {
	return c.LoyaltyPoints >= 100
}

func (c *Customer) AddLoyaltyPoints(points int) {
	if points > 0 {
		c.LoyaltyPoints += points
	}
}

func (c *Customer) RedeemLoyaltyPoints(points int) bool {
	if points <= 0 || c.LoyaltyPoints < points {
		return false
	}
	c.LoyaltyPoints -= points
	return true
}

// ParkingSpace is mutated only through Occupy, Release and Reserve; the
// space registry serializes those calls. Status and vehicle binding move
// together: OCCUPIED iff a plate is bound.
type ParkingSpace struct {
	ID           string      `json:"id"`
	Floor        int         `json:"floor"`
	Zone         string      `json:"zone"`
	VehicleType  VehicleType `json:"vehicle_type"`
	Handicapped  bool        `json:"handicapped"`
	Status       SpaceStatus `json:"status"`
	VehiclePlate string      `json:"vehicle_plate,omitempty"`
}

func NewParkingSpace(id string, floor int, zone string, vt VehicleType, handicapped bool) *ParkingSpace {
	return &ParkingSpace{
		ID:          id,
		Floor:       floor,
		Zone:        zone,
		VehicleType: vt,
		Handicapped: handicapped,
		Status:      SpaceAvailable,
	}
}

func (s *ParkingSpace) Occupy(plate string) error {
	if s.Status == SpaceOccupied {
		return errs.Wrapf(errs.ErrInvalidTransition, "space %s is already occupied", s.ID)
	}
	s.Status = SpaceOccupied
	s.VehiclePlate = plate
	return nil
}

// Release is an idempotent no-op on an already available space.
func (s *ParkingSpace) Release() {
	s.Status = SpaceAvailable
	s.VehiclePlate = ""
}

func (s *ParkingSpace) Reserve() error {
	if s.Status != SpaceAvailable {
		return errs.Wrapf(errs.ErrInvalidTransition, "space %s is %s, cannot reserve", s.ID, s.Status)
	}
	s.Status = SpaceReserved
	return nil
}

// Reservation holds one space exclusively for one customer. Validity is
// closed-open on [CreatedAt, ExpiresAt): the reservation is valid strictly
// before ExpiresAt and expired from that instant on. A used reservation is
// consumed, never "expired"; callers must check Used first.
type Reservation struct {
	ID            string      `json:"id"`
	CustomerID    int64       `json:"customer_id"`
	SpaceID       string      `json:"space_id"`
	VehicleType   VehicleType `json:"vehicle_type"`
	CreatedAt     time.Time   `json:"created_at"`
	ExpiresAt     time.Time   `json:"expires_at"`
	ValidityHours int         `json:"validity_hours"`
	Used          bool        `json:"used"`
}

func (r *Reservation) IsValid(now time.Time) bool {
	return !r.Used && now.Before(r.ExpiresAt)
}

func (r *Reservation) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type ParkingTicket struct {
	ID           string       `json:"id"`
	VehiclePlate string       `json:"vehicle_plate"`
	SpaceID      string       `json:"space_id"`
	CustomerID   *int64       `json:"customer_id,omitempty"`
	EntryTime    time.Time    `json:"entry_time"`
	ExitTime     *time.Time   `json:"exit_time,omitempty"`
	Amount       float64      `json:"amount"`
	Status       TicketStatus `json:"status"`

	PaymentMethod          PaymentMethod `json:"payment_method,omitempty"`
	PaymentDetails         string        `json:"payment_details,omitempty"`
	CashReceived           float64       `json:"cash_received,omitempty"`
	ChangeReturned         float64       `json:"change_returned,omitempty"`
	LoyaltyDiscountApplied bool          `json:"loyalty_discount_applied"`
	LoyaltyPointsEarned    int           `json:"loyalty_points_earned"`
}
