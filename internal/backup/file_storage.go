package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"smartparking/internal/db"
)

const (
	customersFile    = "customers.json"
	ticketsFile      = "tickets.json"
	reservationsFile = "reservations.json"
	spacesFile       = "parking_spaces.json"
)

// FileStorage mirrors the primary store into pretty-printed JSON files.
// Durability here is best-effort: callers log write failures and move on,
// the primary store stays authoritative.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup dir %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// SaveSnapshot writes every entity collection. The first failing write
// aborts the snapshot; partially written snapshots are tolerated since the
// next mutating operation rewrites all four files.
func (f *FileStorage) SaveSnapshot(customers []*db.Customer, tickets []*db.ParkingTicket,
	reservations []*db.Reservation, spaces []*db.ParkingSpace) error {
	if err := f.write(customersFile, customers); err != nil {
		return err
	}
	if err := f.write(ticketsFile, tickets); err != nil {
		return err
	}
	if err := f.write(reservationsFile, reservations); err != nil {
		return err
	}
	return f.write(spacesFile, spaces)
}

func (f *FileStorage) LoadCustomers() ([]*db.Customer, error) {
	var customers []*db.Customer
	err := f.read(customersFile, &customers)
	return customers, err
}

func (f *FileStorage) LoadTickets() ([]*db.ParkingTicket, error) {
	var tickets []*db.ParkingTicket
	err := f.read(ticketsFile, &tickets)
	return tickets, err
}

func (f *FileStorage) LoadReservations() ([]*db.Reservation, error) {
	var reservations []*db.Reservation
	err := f.read(reservationsFile, &reservations)
	return reservations, err
}

func (f *FileStorage) LoadParkingSpaces() ([]*db.ParkingSpace, error) {
	var spaces []*db.ParkingSpace
	err := f.read(spacesFile, &spaces)
	return spaces, err
}

func (f *FileStorage) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// read returns an empty collection when the file does not exist yet.
func (f *FileStorage) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
