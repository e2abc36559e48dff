package repository

import (
	"smartparking/internal/db"
)

// Lookup methods return (nil, nil) when no entity matches; errors are
// reserved for storage failures. The engine decides what "absent" means.

type CustomerRepository interface {
	Save(c *db.Customer) (*db.Customer, error)
	FindByID(id int64) (*db.Customer, error)
	FindByContact(contact string) (*db.Customer, error)
	FindAll() ([]*db.Customer, error)
}

type VehicleRepository interface {
	Save(v *db.Vehicle) error
	FindByPlate(plate string) (*db.Vehicle, error)
	FindAll() ([]*db.Vehicle, error)
}

type SpaceRepository interface {
	Save(s *db.ParkingSpace) error
	FindByID(id string) (*db.ParkingSpace, error)
	FindAll() ([]*db.ParkingSpace, error)
	FindByType(vt db.VehicleType) ([]*db.ParkingSpace, error)
	FindByStatusAndType(status db.SpaceStatus, vt db.VehicleType) ([]*db.ParkingSpace, error)
	FindByStatusAndTypeAndHandicapped(status db.SpaceStatus, vt db.VehicleType, handicapped bool) ([]*db.ParkingSpace, error)
	Count() (int, error)
}

type ReservationRepository interface {
	Save(r *db.Reservation) error
	FindByID(id string) (*db.Reservation, error)
	FindAll() ([]*db.Reservation, error)
	FindByUsedFalse() ([]*db.Reservation, error)
}

type TicketRepository interface {
	Save(t *db.ParkingTicket) error
	FindByID(id string) (*db.ParkingTicket, error)
	FindAll() ([]*db.ParkingTicket, error)
	FindByStatus(status db.TicketStatus) ([]*db.ParkingTicket, error)
}

// Store bundles the per-entity repositories the engine depends on.
type Store struct {
	Customers    CustomerRepository
	Vehicles     VehicleRepository
	Spaces       SpaceRepository
	Reservations ReservationRepository
	Tickets      TicketRepository
}
