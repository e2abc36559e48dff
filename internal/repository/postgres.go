package repository

import (
	"database/sql"
	"fmt"
)

// NewPostgresStore wires all repositories over one *sql.DB. The schema is
// created on demand so a fresh database is usable without migrations.
func NewPostgresStore(database *sql.DB) (*Store, error) {
	if err := ensureSchema(database); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return &Store{
		Customers:    &pgCustomerRepo{DB: database},
		Vehicles:     &pgVehicleRepo{DB: database},
		Spaces:       &pgSpaceRepo{DB: database},
		Reservations: &pgReservationRepo{DB: database},
		Tickets:      &pgTicketRepo{DB: database},
	}, nil
}

func ensureSchema(database *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			contact TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			handicapped BOOLEAN NOT NULL DEFAULT FALSE,
			loyalty_points INT NOT NULL DEFAULT 0,
			registered_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			license_plate TEXT PRIMARY KEY,
			vehicle_type TEXT NOT NULL,
			owner_contact TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS parking_spaces (
			id TEXT PRIMARY KEY,
			floor INT NOT NULL,
			zone TEXT NOT NULL,
			vehicle_type TEXT NOT NULL,
			handicapped BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL,
			vehicle_plate TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id TEXT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			space_id TEXT NOT NULL,
			vehicle_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			validity_hours INT NOT NULL,
			used BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			vehicle_plate TEXT NOT NULL,
			space_id TEXT NOT NULL,
			customer_id BIGINT,
			entry_time TIMESTAMPTZ NOT NULL,
			exit_time TIMESTAMPTZ,
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			payment_method TEXT,
			payment_details TEXT,
			cash_received DOUBLE PRECISION NOT NULL DEFAULT 0,
			change_returned DOUBLE PRECISION NOT NULL DEFAULT 0,
			loyalty_discount_applied BOOLEAN NOT NULL DEFAULT FALSE,
			loyalty_points_earned INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
