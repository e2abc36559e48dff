package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartparking/internal/clock"
	"smartparking/internal/db"
	"smartparking/internal/errs"
	"smartparking/internal/repository"
)

// ReservationService creates, validates and lazily expires holds on spaces.
// Expiry is swept on demand; there is no background timer.
type ReservationService struct {
	store     *repository.Store
	registry  *SpaceRegistry
	clock     clock.Clock
	log       *slog.Logger
	snapshots *Snapshotter
	notifier  *NotifyService
}

func NewReservationService(store *repository.Store, registry *SpaceRegistry,
	clk clock.Clock, log *slog.Logger, snapshots *Snapshotter, notifier *NotifyService) *ReservationService {
	return &ReservationService{
		store:     store,
		registry:  registry,
		clock:     clk,
		log:       log,
		snapshots: snapshots,
		notifier:  notifier,
	}
}

// Create reserves one allocatable space for the customer, preferring
// handicapped spaces for handicapped customers. Returns (nil, nil) when no
// space is available.
func (s *ReservationService) Create(customerID int64, vt db.VehicleType, validityHours int) (*db.Reservation, error) {
	customer, err := s.store.Customers.FindByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.Wrapf(errs.ErrCustomerNotFound, "customer %d", customerID)
	}

	space, err := s.registry.AllocateReserved(vt, customer.Handicapped)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, nil
	}

	now := s.clock.Now()
	res := &db.Reservation{
		ID:            uuid.NewString(),
		CustomerID:    customer.ID,
		SpaceID:       space.ID,
		VehicleType:   vt,
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(validityHours) * time.Hour),
		ValidityHours: validityHours,
		Used:          false,
	}
	if err := s.store.Reservations.Save(res); err != nil {
		// The space was already reserved; free it so a failed save does not
		// leak a hold nothing references.
		if relErr := s.registry.Release(space.ID); relErr != nil {
			s.log.Error("could not release space after failed reservation save",
				"space_id", space.ID, "error", relErr)
		}
		return nil, err
	}

	s.snapshots.Save()
	s.notifier.ReservationConfirmed(customer, res, space)
	s.log.Info("reservation created",
		"reservation_id", res.ID, "space_id", space.ID, "expires_at", res.ExpiresAt)
	return res, nil
}

// SweepExpired releases the space of every unused reservation past its
// validity window and marks the reservation used. Callers run this before
// any allocation decision that stale reservations could affect.
func (s *ReservationService) SweepExpired() error {
	unused, err := s.store.Reservations.FindByUsedFalse()
	if err != nil {
		return err
	}

	now := s.clock.Now()
	changed := false
	for _, res := range unused {
		if !res.IsExpired(now) {
			continue
		}
		if err := s.registry.Release(res.SpaceID); err != nil {
			return err
		}
		res.Used = true
		if err := s.store.Reservations.Save(res); err != nil {
			return err
		}
		s.log.Info("reservation expired", "reservation_id", res.ID, "space_id", res.SpaceID)
		changed = true
	}

	if changed {
		s.snapshots.Save()
	}
	return nil
}

// ListActive sweeps first, then returns the reservations still holding a
// space.
func (s *ReservationService) ListActive() ([]*db.Reservation, error) {
	if err := s.SweepExpired(); err != nil {
		return nil, err
	}
	unused, err := s.store.Reservations.FindByUsedFalse()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	active := make([]*db.Reservation, 0, len(unused))
	for _, res := range unused {
		if res.IsValid(now) {
			active = append(active, res)
		}
	}
	return active, nil
}
