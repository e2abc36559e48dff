package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
)

type pgReservationRepo struct {
	DB *sql.DB
}

const reservationColumns = `id, customer_id, space_id, vehicle_type, created_at, expires_at, validity_hours, used`

func (r *pgReservationRepo) Save(res *db.Reservation) error {
	query := `
		INSERT INTO reservations (id, customer_id, space_id, vehicle_type, created_at, expires_at, validity_hours, used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET used = EXCLUDED.used`
	if _, err := r.DB.Exec(query, res.ID, res.CustomerID, res.SpaceID, res.VehicleType,
		res.CreatedAt, res.ExpiresAt, res.ValidityHours, res.Used); err != nil {
		return fmt.Errorf("error saving reservation %s: %w", res.ID, err)
	}
	return nil
}

func (r *pgReservationRepo) FindByID(id string) (*db.Reservation, error) {
	var res db.Reservation
	err := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id).
		Scan(&res.ID, &res.CustomerID, &res.SpaceID, &res.VehicleType,
			&res.CreatedAt, &res.ExpiresAt, &res.ValidityHours, &res.Used)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *pgReservationRepo) FindAll() ([]*db.Reservation, error) {
	return r.query(`SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at, id`)
}

func (r *pgReservationRepo) FindByUsedFalse() ([]*db.Reservation, error) {
	return r.query(`SELECT ` + reservationColumns + ` FROM reservations WHERE used = FALSE ORDER BY created_at, id`)
}

func (r *pgReservationRepo) query(query string, args ...any) ([]*db.Reservation, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(&res.ID, &res.CustomerID, &res.SpaceID, &res.VehicleType,
			&res.CreatedAt, &res.ExpiresAt, &res.ValidityHours, &res.Used); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, &res)
	}
	return reservations, rows.Err()
}
