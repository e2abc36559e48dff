package service

import (
	"log/slog"

	"smartparking/internal/db"
	"smartparking/internal/repository"
)

// SnapshotSink consumes full entity collections after mutating operations.
// Sink failures must never abort an operation already committed to the
// primary store.
type SnapshotSink interface {
	SaveSnapshot(customers []*db.Customer, tickets []*db.ParkingTicket,
		reservations []*db.Reservation, spaces []*db.ParkingSpace) error
}

// Snapshotter mirrors the primary store into the sink, logging and
// swallowing every failure. A nil Snapshotter is a valid no-op, which keeps
// tests free of backup wiring.
type Snapshotter struct {
	store *repository.Store
	sink  SnapshotSink
	log   *slog.Logger
}

func NewSnapshotter(store *repository.Store, sink SnapshotSink, log *slog.Logger) *Snapshotter {
	return &Snapshotter{store: store, sink: sink, log: log}
}

func (s *Snapshotter) Save() {
	if s == nil || s.sink == nil {
		return
	}
	customers, err := s.store.Customers.FindAll()
	if err != nil {
		s.log.Warn("snapshot skipped: reading customers failed", "error", err)
		return
	}
	tickets, err := s.store.Tickets.FindAll()
	if err != nil {
		s.log.Warn("snapshot skipped: reading tickets failed", "error", err)
		return
	}
	reservations, err := s.store.Reservations.FindAll()
	if err != nil {
		s.log.Warn("snapshot skipped: reading reservations failed", "error", err)
		return
	}
	spaces, err := s.store.Spaces.FindAll()
	if err != nil {
		s.log.Warn("snapshot skipped: reading spaces failed", "error", err)
		return
	}
	if err := s.sink.SaveSnapshot(customers, tickets, reservations, spaces); err != nil {
		s.log.Warn("snapshot backup failed", "error", err)
	}
}
