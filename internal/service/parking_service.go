package service

import (
	"log/slog"

	"github.com/google/uuid"

	"smartparking/internal/clock"
	"smartparking/internal/db"
	"smartparking/internal/errs"
	"smartparking/internal/repository"
)

// ParkingService issues tickets on entry and resolves them on exit,
// orchestrating the space registry, pricing engine and loyalty accrual.
type ParkingService struct {
	store        *repository.Store
	registry     *SpaceRegistry
	reservations *ReservationService
	pricing      *PricingEngine
	clock        clock.Clock
	log          *slog.Logger
	snapshots    *Snapshotter
}

func NewParkingService(store *repository.Store, registry *SpaceRegistry,
	reservations *ReservationService, pricing *PricingEngine,
	clk clock.Clock, log *slog.Logger, snapshots *Snapshotter) *ParkingService {
	return &ParkingService{
		store:        store,
		registry:     registry,
		reservations: reservations,
		pricing:      pricing,
		clock:        clk,
		log:          log,
		snapshots:    snapshots,
	}
}

// ExitPreview reports the fee a ticket would incur if finalized now.
type ExitPreview struct {
	Amount           float64
	Hours            int64
	Weekend          bool
	DiscountEligible bool
}

// ExitResult reports the terminal resolution of a ticket.
type ExitResult struct {
	Ticket          *db.ParkingTicket
	Amount          float64
	ChangeReturned  float64
	DiscountApplied bool
	PointsEarned    int
}

// Park issues an ACTIVE ticket for the vehicle. A supplied valid
// reservation is consumed and its space used; otherwise a space is
// allocated, preferring handicapped spaces for handicapped customers.
// Returns (nil, nil) when no space can be obtained: that is the sole "lot
// full" outcome and no ticket is issued.
func (s *ParkingService) Park(plate string, vt db.VehicleType, contact string,
	customerID *int64, reservationID string) (*db.ParkingTicket, error) {
	if err := s.reservations.SweepExpired(); err != nil {
		return nil, err
	}

	var customer *db.Customer
	if customerID != nil {
		var err error
		customer, err = s.store.Customers.FindByID(*customerID)
		if err != nil {
			return nil, err
		}
	}

	vehicle := &db.Vehicle{LicensePlate: plate, Type: vt, OwnerContact: contact}
	if err := s.store.Vehicles.Save(vehicle); err != nil {
		return nil, err
	}

	var space *db.ParkingSpace
	if reservationID != "" {
		res, err := s.store.Reservations.FindByID(reservationID)
		if err != nil {
			return nil, err
		}
		if res != nil && res.IsValid(s.clock.Now()) {
			res.Used = true
			if err := s.store.Reservations.Save(res); err != nil {
				return nil, err
			}
			space, err = s.registry.Occupy(res.SpaceID, plate)
			if err != nil {
				return nil, err
			}
		}
	}

	if space == nil {
		preferHandicapped := customer != nil && customer.Handicapped
		var err error
		space, err = s.registry.AllocateOccupied(vt, preferHandicapped, plate)
		if err != nil {
			return nil, err
		}
		if space == nil {
			s.log.Info("park rejected, lot full", "plate", plate, "vehicle_type", vt)
			return nil, nil
		}
	}

	ticket := &db.ParkingTicket{
		ID:           uuid.NewString(),
		VehiclePlate: plate,
		SpaceID:      space.ID,
		CustomerID:   customerID,
		EntryTime:    s.clock.Now(),
		Status:       db.TicketActive,
	}
	if err := s.store.Tickets.Save(ticket); err != nil {
		return nil, err
	}

	s.snapshots.Save()
	s.log.Info("vehicle parked", "ticket_id", ticket.ID, "space_id", space.ID, "plate", plate)
	return ticket, nil
}

// ExitPreview prices the stay at the current time without mutating any
// state.
func (s *ParkingService) ExitPreview(ticketID string) (*ExitPreview, error) {
	ticket, err := s.store.Tickets.FindByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errs.Wrapf(errs.ErrTicketNotFound, "ticket %s", ticketID)
	}

	eligible, err := s.loyaltyEligible(ticket)
	if err != nil {
		return nil, err
	}

	vt, err := s.ticketVehicleType(ticket)
	if err != nil {
		return nil, err
	}

	q := s.pricing.Quote(vt, ticket.EntryTime, s.clock.Now(), eligible)
	return &ExitPreview{
		Amount:           q.Amount,
		Hours:            q.Hours,
		Weekend:          q.Weekend,
		DiscountEligible: q.DiscountApplied,
	}, nil
}

// ExitFinalize recomputes the fee at finalize time, validates payment, then
// stamps the ticket PAID, accrues loyalty points and releases the space. A
// cash shortfall fails the operation before any state changes; the ticket
// stays ACTIVE and the space OCCUPIED.
func (s *ParkingService) ExitFinalize(ticketID string, method db.PaymentMethod,
	paymentDetails string, cashReceived float64) (*ExitResult, error) {
	ticket, err := s.store.Tickets.FindByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errs.Wrapf(errs.ErrTicketNotFound, "ticket %s", ticketID)
	}
	if ticket.Status != db.TicketActive {
		return nil, errs.Wrapf(errs.ErrTicketNotActive, "ticket %s is %s", ticketID, ticket.Status)
	}

	var customer *db.Customer
	if ticket.CustomerID != nil {
		customer, err = s.store.Customers.FindByID(*ticket.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	vt, err := s.ticketVehicleType(ticket)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	eligible := customer != nil && customer.HasLoyaltyDiscount()
	q := s.pricing.Quote(vt, ticket.EntryTime, now, eligible)

	if method == db.PaymentCash && cashReceived < q.Amount {
		return nil, errs.Wrapf(errs.ErrInsufficientCash,
			"required %.2f, tendered %.2f", q.Amount, cashReceived)
	}

	ticket.ExitTime = &now
	ticket.Amount = q.Amount
	ticket.PaymentMethod = method
	ticket.PaymentDetails = paymentDetails
	ticket.LoyaltyDiscountApplied = q.DiscountApplied
	if method == db.PaymentCash {
		ticket.CashReceived = cashReceived
		ticket.ChangeReturned = cashReceived - q.Amount
	}

	pointsEarned := 0
	if customer != nil {
		pointsEarned = int(q.Amount / 10)
		customer.AddLoyaltyPoints(pointsEarned)
		ticket.LoyaltyPointsEarned = pointsEarned
		if _, err := s.store.Customers.Save(customer); err != nil {
			return nil, err
		}
	}

	ticket.Status = db.TicketPaid
	if err := s.registry.Release(ticket.SpaceID); err != nil {
		return nil, err
	}
	if err := s.store.Tickets.Save(ticket); err != nil {
		return nil, err
	}

	s.snapshots.Save()
	s.log.Info("vehicle exited",
		"ticket_id", ticket.ID, "amount", q.Amount, "method", method, "points_earned", pointsEarned)
	return &ExitResult{
		Ticket:          ticket,
		Amount:          q.Amount,
		ChangeReturned:  ticket.ChangeReturned,
		DiscountApplied: q.DiscountApplied,
		PointsEarned:    pointsEarned,
	}, nil
}

func (s *ParkingService) ActiveTickets() ([]*db.ParkingTicket, error) {
	return s.store.Tickets.FindByStatus(db.TicketActive)
}

// RegisterCustomer creates a customer with a zero loyalty balance.
func (s *ParkingService) RegisterCustomer(name, contact, email string, handicapped bool) (*db.Customer, error) {
	customer := &db.Customer{
		Name:         name,
		Contact:      contact,
		Email:        email,
		Handicapped:  handicapped,
		RegisteredAt: s.clock.Now(),
	}
	saved, err := s.store.Customers.Save(customer)
	if err != nil {
		return nil, err
	}
	s.snapshots.Save()
	return saved, nil
}

func (s *ParkingService) FindCustomerByContact(contact string) (*db.Customer, error) {
	return s.store.Customers.FindByContact(contact)
}

func (s *ParkingService) Customers() ([]*db.Customer, error) {
	return s.store.Customers.FindAll()
}

func (s *ParkingService) loyaltyEligible(ticket *db.ParkingTicket) (bool, error) {
	if ticket.CustomerID == nil {
		return false, nil
	}
	customer, err := s.store.Customers.FindByID(*ticket.CustomerID)
	if err != nil {
		return false, err
	}
	return customer != nil && customer.HasLoyaltyDiscount(), nil
}

// ticketVehicleType resolves the parked vehicle's type; the space's
// compatible type is the fallback when the vehicle record is gone.
func (s *ParkingService) ticketVehicleType(ticket *db.ParkingTicket) (db.VehicleType, error) {
	vehicle, err := s.store.Vehicles.FindByPlate(ticket.VehiclePlate)
	if err != nil {
		return "", err
	}
	if vehicle != nil {
		return vehicle.Type, nil
	}
	space, err := s.store.Spaces.FindByID(ticket.SpaceID)
	if err != nil {
		return "", err
	}
	if space == nil {
		return "", errs.Wrapf(errs.ErrSpaceNotFound, "space %s", ticket.SpaceID)
	}
	return space.VehicleType, nil
}
