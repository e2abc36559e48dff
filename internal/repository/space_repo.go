package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
)

type pgSpaceRepo struct {
	DB *sql.DB
}

const spaceColumns = `id, floor, zone, vehicle_type, handicapped, status, vehicle_plate`

func (r *pgSpaceRepo) Save(s *db.ParkingSpace) error {
	plate := sql.NullString{String: s.VehiclePlate, Valid: s.VehiclePlate != ""}
	query := `
		INSERT INTO parking_spaces (id, floor, zone, vehicle_type, handicapped, status, vehicle_plate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET status = EXCLUDED.status, vehicle_plate = EXCLUDED.vehicle_plate`
	if _, err := r.DB.Exec(query, s.ID, s.Floor, s.Zone, s.VehicleType, s.Handicapped, s.Status, plate); err != nil {
		return fmt.Errorf("error saving space %s: %w", s.ID, err)
	}
	return nil
}

func (r *pgSpaceRepo) FindByID(id string) (*db.ParkingSpace, error) {
	row := r.DB.QueryRow(`SELECT `+spaceColumns+` FROM parking_spaces WHERE id = $1`, id)
	s, err := scanSpace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying space %s: %w", id, err)
	}
	return s, nil
}

func (r *pgSpaceRepo) FindAll() ([]*db.ParkingSpace, error) {
	return r.query(`SELECT ` + spaceColumns + ` FROM parking_spaces ORDER BY id`)
}

func (r *pgSpaceRepo) FindByType(vt db.VehicleType) ([]*db.ParkingSpace, error) {
	return r.query(`SELECT `+spaceColumns+` FROM parking_spaces WHERE vehicle_type = $1 ORDER BY id`, vt)
}

func (r *pgSpaceRepo) FindByStatusAndType(status db.SpaceStatus, vt db.VehicleType) ([]*db.ParkingSpace, error) {
	return r.query(`SELECT `+spaceColumns+` FROM parking_spaces
		WHERE status = $1 AND vehicle_type = $2 ORDER BY id`, status, vt)
}

func (r *pgSpaceRepo) FindByStatusAndTypeAndHandicapped(status db.SpaceStatus, vt db.VehicleType, handicapped bool) ([]*db.ParkingSpace, error) {
	return r.query(`SELECT `+spaceColumns+` FROM parking_spaces
		WHERE status = $1 AND vehicle_type = $2 AND handicapped = $3 ORDER BY id`, status, vt, handicapped)
}

func (r *pgSpaceRepo) Count() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM parking_spaces`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting spaces: %w", err)
	}
	return n, nil
}

func (r *pgSpaceRepo) query(query string, args ...any) ([]*db.ParkingSpace, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying spaces: %w", err)
	}
	defer rows.Close()

	var spaces []*db.ParkingSpace
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning space: %w", err)
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(row rowScanner) (*db.ParkingSpace, error) {
	var s db.ParkingSpace
	var plate sql.NullString
	if err := row.Scan(&s.ID, &s.Floor, &s.Zone, &s.VehicleType, &s.Handicapped, &s.Status, &plate); err != nil {
		return nil, err
	}
	s.VehiclePlate = plate.String
	return &s, nil
}
