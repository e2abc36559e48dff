package service

import (
	"fmt"
	"log/slog"

	"smartparking/internal/backup"
	"smartparking/internal/db"
	"smartparking/internal/repository"
)

const facilityFloors = 3

// Seeder prepares the space registry on startup: restore from the snapshot
// files when the store is empty, or lay out the default facility.
type Seeder struct {
	store   *repository.Store
	backups *backup.FileStorage
	log     *slog.Logger
}

func NewSeeder(store *repository.Store, backups *backup.FileStorage, log *slog.Logger) *Seeder {
	return &Seeder{store: store, backups: backups, log: log}
}

func (s *Seeder) Initialize() error {
	count, err := s.store.Spaces.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("store already seeded", "spaces", count)
		return nil
	}

	if s.backups != nil {
		restored, err := s.restoreFromSnapshot()
		if err != nil {
			s.log.Warn("snapshot restore failed, creating fresh layout", "error", err)
		} else if restored {
			return nil
		}
	}
	return s.createDefaultSpaces()
}

func (s *Seeder) restoreFromSnapshot() (bool, error) {
	spaces, err := s.backups.LoadParkingSpaces()
	if err != nil {
		return false, err
	}
	if len(spaces) == 0 {
		return false, nil
	}
	for _, space := range spaces {
		if err := s.store.Spaces.Save(space); err != nil {
			return false, err
		}
	}

	customers, err := s.backups.LoadCustomers()
	if err != nil {
		return false, err
	}
	for _, c := range customers {
		if _, err := s.store.Customers.Save(c); err != nil {
			return false, err
		}
	}

	tickets, err := s.backups.LoadTickets()
	if err != nil {
		return false, err
	}
	for _, t := range tickets {
		if err := s.store.Tickets.Save(t); err != nil {
			return false, err
		}
	}

	reservations, err := s.backups.LoadReservations()
	if err != nil {
		return false, err
	}
	for _, r := range reservations {
		if err := s.store.Reservations.Save(r); err != nil {
			return false, err
		}
	}

	s.log.Info("restored from snapshot",
		"spaces", len(spaces), "customers", len(customers),
		"tickets", len(tickets), "reservations", len(reservations))
	return true, nil
}

// createDefaultSpaces lays out the standard facility: per floor, zone A has
// 8 car spaces plus 2 handicapped car spaces, zone B has 15 bike spaces and
// zone C has 5 truck spaces.
func (s *Seeder) createDefaultSpaces() error {
	total := 0
	for floor := 1; floor <= facilityFloors; floor++ {
		for i := 1; i <= 8; i++ {
			if err := s.saveSpace(floor, "A", i, db.VehicleCar, false); err != nil {
				return err
			}
			total++
		}
		for i := 9; i <= 10; i++ {
			if err := s.saveSpace(floor, "A", i, db.VehicleCar, true); err != nil {
				return err
			}
			total++
		}
		for i := 1; i <= 15; i++ {
			if err := s.saveSpace(floor, "B", i, db.VehicleBike, false); err != nil {
				return err
			}
			total++
		}
		for i := 1; i <= 5; i++ {
			if err := s.saveSpace(floor, "C", i, db.VehicleTruck, false); err != nil {
				return err
			}
			total++
		}
	}
	s.log.Info("created default parking layout", "spaces", total)
	return nil
}

func (s *Seeder) saveSpace(floor int, zone string, index int, vt db.VehicleType, handicapped bool) error {
	id := fmt.Sprintf("F%d-%s-%d", floor, zone, index)
	return s.store.Spaces.Save(db.NewParkingSpace(id, floor, zone, vt, handicapped))
}
