package api

// Response is the envelope every endpoint renders: a success flag, a
// human-readable message and an operation-specific payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type ParkRequest struct {
	LicensePlate  string `json:"license_plate"`
	VehicleType   string `json:"vehicle_type"`
	Contact       string `json:"contact"`
	CustomerID    *int64 `json:"customer_id,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
}

type ExitRequest struct {
	PaymentMethod  string  `json:"payment_method"`
	PaymentDetails string  `json:"payment_details,omitempty"`
	CashReceived   float64 `json:"cash_received,omitempty"`
}

type CreateReservationRequest struct {
	CustomerID    int64  `json:"customer_id"`
	VehicleType   string `json:"vehicle_type"`
	ValidityHours int    `json:"validity_hours"`
}

type RegisterCustomerRequest struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Handicapped bool   `json:"handicapped"`
}
