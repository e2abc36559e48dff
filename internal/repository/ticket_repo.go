package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
)

type pgTicketRepo struct {
	DB *sql.DB
}

const ticketColumns = `id, vehicle_plate, space_id, customer_id, entry_time, exit_time, amount, status,
	payment_method, payment_details, cash_received, change_returned, loyalty_discount_applied, loyalty_points_earned`

func (r *pgTicketRepo) Save(t *db.ParkingTicket) error {
	customerID := sql.NullInt64{}
	if t.CustomerID != nil {
		customerID = sql.NullInt64{Int64: *t.CustomerID, Valid: true}
	}
	exitTime := sql.NullTime{}
	if t.ExitTime != nil {
		exitTime = sql.NullTime{Time: *t.ExitTime, Valid: true}
	}
	method := sql.NullString{String: string(t.PaymentMethod), Valid: t.PaymentMethod != ""}

	query := `
		INSERT INTO tickets (id, vehicle_plate, space_id, customer_id, entry_time, exit_time, amount, status,
			payment_method, payment_details, cash_received, change_returned, loyalty_discount_applied, loyalty_points_earned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id)
		DO UPDATE SET exit_time = EXCLUDED.exit_time, amount = EXCLUDED.amount, status = EXCLUDED.status,
			payment_method = EXCLUDED.payment_method, payment_details = EXCLUDED.payment_details,
			cash_received = EXCLUDED.cash_received, change_returned = EXCLUDED.change_returned,
			loyalty_discount_applied = EXCLUDED.loyalty_discount_applied,
			loyalty_points_earned = EXCLUDED.loyalty_points_earned`
	if _, err := r.DB.Exec(query, t.ID, t.VehiclePlate, t.SpaceID, customerID, t.EntryTime, exitTime,
		t.Amount, t.Status, method, t.PaymentDetails, t.CashReceived, t.ChangeReturned,
		t.LoyaltyDiscountApplied, t.LoyaltyPointsEarned); err != nil {
		return fmt.Errorf("error saving ticket %s: %w", t.ID, err)
	}
	return nil
}

func (r *pgTicketRepo) FindByID(id string) (*db.ParkingTicket, error) {
	row := r.DB.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying ticket %s: %w", id, err)
	}
	return t, nil
}

func (r *pgTicketRepo) FindAll() ([]*db.ParkingTicket, error) {
	return r.query(`SELECT ` + ticketColumns + ` FROM tickets ORDER BY entry_time, id`)
}

func (r *pgTicketRepo) FindByStatus(status db.TicketStatus) ([]*db.ParkingTicket, error) {
	return r.query(`SELECT `+ticketColumns+` FROM tickets WHERE status = $1 ORDER BY entry_time, id`, status)
}

func (r *pgTicketRepo) query(query string, args ...any) ([]*db.ParkingTicket, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*db.ParkingTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func scanTicket(row rowScanner) (*db.ParkingTicket, error) {
	var t db.ParkingTicket
	var customerID sql.NullInt64
	var exitTime sql.NullTime
	var method, details sql.NullString
	if err := row.Scan(&t.ID, &t.VehiclePlate, &t.SpaceID, &customerID, &t.EntryTime, &exitTime,
		&t.Amount, &t.Status, &method, &details, &t.CashReceived, &t.ChangeReturned,
		&t.LoyaltyDiscountApplied, &t.LoyaltyPointsEarned); err != nil {
		return nil, err
	}
	if customerID.Valid {
		t.CustomerID = &customerID.Int64
	}
	if exitTime.Valid {
		et := exitTime.Time
		t.ExitTime = &et
	}
	t.PaymentMethod = db.PaymentMethod(method.String)
	t.PaymentDetails = details.String
	return &t, nil
}
