package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"smartparking/internal/db"
)

type pgCustomerRepo struct {
	DB *sql.DB
}

func (r *pgCustomerRepo) Save(c *db.Customer) (*db.Customer, error) {
	if c.ID == 0 {
		query := `
			INSERT INTO customers (name, contact, email, handicapped, loyalty_points, registered_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		err := r.DB.QueryRow(query, c.Name, c.Contact, c.Email, c.Handicapped, c.LoyaltyPoints, c.RegisteredAt).Scan(&c.ID)
		if err != nil {
			return nil, fmt.Errorf("error inserting customer: %w", err)
		}
		saved := *c
		return &saved, nil
	}

	query := `
		UPDATE customers
		SET name = $1, contact = $2, email = $3, handicapped = $4, loyalty_points = $5
		WHERE id = $6`
	if _, err := r.DB.Exec(query, c.Name, c.Contact, c.Email, c.Handicapped, c.LoyaltyPoints, c.ID); err != nil {
		return nil, fmt.Errorf("error updating customer %d: %w", c.ID, err)
	}
	saved := *c
	return &saved, nil
}

func (r *pgCustomerRepo) FindByID(id int64) (*db.Customer, error) {
	return r.scanOne(`SELECT id, name, contact, email, handicapped, loyalty_points, registered_at
		FROM customers WHERE id = $1`, id)
}

func (r *pgCustomerRepo) FindByContact(contact string) (*db.Customer, error) {
	return r.scanOne(`SELECT id, name, contact, email, handicapped, loyalty_points, registered_at
		FROM customers WHERE contact = $1`, contact)
}

func (r *pgCustomerRepo) scanOne(query string, arg any) (*db.Customer, error) {
	var c db.Customer
	err := r.DB.QueryRow(query, arg).
		Scan(&c.ID, &c.Name, &c.Contact, &c.Email, &c.Handicapped, &c.LoyaltyPoints, &c.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

func (r *pgCustomerRepo) FindAll() ([]*db.Customer, error) {
	query := `SELECT id, name, contact, email, handicapped, loyalty_points, registered_at
		FROM customers ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []*db.Customer
	for rows.Next() {
		var c db.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Email, &c.Handicapped, &c.LoyaltyPoints, &c.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
