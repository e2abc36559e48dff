package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
)

type pgVehicleRepo struct {
	DB *sql.DB
}

func (r *pgVehicleRepo) Save(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (license_plate, vehicle_type, owner_contact)
		VALUES ($1, $2, $3)
		ON CONFLICT (license_plate)
		DO UPDATE SET vehicle_type = EXCLUDED.vehicle_type, owner_contact = EXCLUDED.owner_contact`
	if _, err := r.DB.Exec(query, v.LicensePlate, v.Type, v.OwnerContact); err != nil {
		return fmt.Errorf("error saving vehicle %s: %w", v.LicensePlate, err)
	}
	return nil
}

func (r *pgVehicleRepo) FindByPlate(plate string) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRow(`SELECT license_plate, vehicle_type, owner_contact FROM vehicles WHERE license_plate = $1`, plate).
		Scan(&v.LicensePlate, &v.Type, &v.OwnerContact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle %s: %w", plate, err)
	}
	return &v, nil
}

func (r *pgVehicleRepo) FindAll() ([]*db.Vehicle, error) {
	rows, err := r.DB.Query(`SELECT license_plate, vehicle_type, owner_contact FROM vehicles ORDER BY license_plate`)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.LicensePlate, &v.Type, &v.OwnerContact); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}
