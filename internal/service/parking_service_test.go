package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/db"
	"smartparking/internal/errs"
)

func TestParkIssuesActiveTicket(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "555-0100", nil, "")
	require.NoError(t, err)
	require.NotNil(t, ticket)

	assert.Equal(t, db.TicketActive, ticket.Status)
	assert.Equal(t, "F1-A-1", ticket.SpaceID)
	assert.Equal(t, weekday(9, 0), ticket.EntryTime)
	assert.Equal(t, db.SpaceOccupied, env.spaceStatus(t, "F1-A-1"))

	vehicle, err := env.store.Vehicles.FindByPlate("KA-01-1234")
	require.NoError(t, err)
	require.NotNil(t, vehicle)
	assert.Equal(t, db.VehicleCar, vehicle.Type)
}

func TestParkLotFull(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	first, err := env.parking.Park("AAA", db.VehicleCar, "", nil, "")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := env.parking.Park("BBB", db.VehicleCar, "", nil, "")
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestParkConsumesReservation(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))
	customer := env.registerCustomer(t, "alice", false, 0)

	res, err := env.reservations.Create(customer.ID, db.VehicleCar, 2)
	require.NoError(t, err)
	require.Equal(t, db.SpaceReserved, env.spaceStatus(t, "F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", &customer.ID, res.ID)
	require.NoError(t, err)
	require.NotNil(t, ticket)

	assert.Equal(t, res.SpaceID, ticket.SpaceID)
	assert.Equal(t, db.SpaceOccupied, env.spaceStatus(t, "F1-A-1"))

	stored, err := env.store.Reservations.FindByID(res.ID)
	require.NoError(t, err)
	assert.True(t, stored.Used)
}

func TestParkWithExpiredReservationFallsBack(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"), carSpace("F1-A-2"))
	customer := env.registerCustomer(t, "alice", false, 0)

	res, err := env.reservations.Create(customer.ID, db.VehicleCar, 1)
	require.NoError(t, err)

	env.clk.Add(2 * time.Hour)
	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", &customer.ID, res.ID)
	require.NoError(t, err)
	require.NotNil(t, ticket)

	// The expired hold was swept, so the ticket got a fresh allocation.
	assert.Equal(t, db.SpaceOccupied, env.spaceStatus(t, ticket.SpaceID))
}

func TestExitPreviewDoesNotMutate(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	env.clk.Add(90 * time.Minute)
	preview, err := env.parking.ExitPreview(ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), preview.Hours)
	assert.Equal(t, 40.0, preview.Amount)
	assert.False(t, preview.Weekend)
	assert.False(t, preview.DiscountEligible)

	stored, err := env.store.Tickets.FindByID(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, db.TicketActive, stored.Status)
	assert.Equal(t, db.SpaceOccupied, env.spaceStatus(t, "F1-A-1"))
}

func TestExitPreviewUnknownTicket(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0))

	_, err := env.parking.ExitPreview("nope")
	assert.True(t, errs.Is(err, errs.ErrTicketNotFound))
}

func TestExitFinalizeCashWithExactTender(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))
	customer := env.registerCustomer(t, "alice", false, 0)

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", &customer.ID, "")
	require.NoError(t, err)

	env.clk.Add(2 * time.Hour)
	result, err := env.parking.ExitFinalize(ticket.ID, db.PaymentCash, "", 40)
	require.NoError(t, err)

	assert.Equal(t, 40.0, result.Amount)
	assert.Equal(t, 0.0, result.ChangeReturned)
	assert.False(t, result.DiscountApplied)
	assert.Equal(t, 4, result.PointsEarned)
	assert.Equal(t, db.TicketPaid, result.Ticket.Status)
	require.NotNil(t, result.Ticket.ExitTime)
	assert.Equal(t, db.SpaceAvailable, env.spaceStatus(t, "F1-A-1"))

	stored, err := env.store.Customers.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.LoyaltyPoints)
}

func TestExitFinalizeInsufficientCashLeavesTicketActive(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	env.clk.Add(2 * time.Hour)
	_, err = env.parking.ExitFinalize(ticket.ID, db.PaymentCash, "", 30)
	assert.True(t, errs.Is(err, errs.ErrInsufficientCash))

	stored, err := env.store.Tickets.FindByID(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, db.TicketActive, stored.Status)
	assert.Nil(t, stored.ExitTime)
	assert.Equal(t, db.SpaceOccupied, env.spaceStatus(t, "F1-A-1"))
}

func TestExitFinalizeLoyaltyWeekendDiscount(t *testing.T) {
	env := newTestEnv(t, saturday(9, 0),
		db.NewParkingSpace("F1-B-1", 1, "B", db.VehicleBike, false))
	customer := env.registerCustomer(t, "alice", false, 120)

	ticket, err := env.parking.Park("KA-01-0001", db.VehicleBike, "", &customer.ID, "")
	require.NoError(t, err)

	env.clk.Add(1 * time.Hour)
	result, err := env.parking.ExitFinalize(ticket.ID, db.PaymentCash, "", 20)
	require.NoError(t, err)

	// 10 * 1.2 weekend * 0.9 loyalty.
	assert.InDelta(t, 10.8, result.Amount, 1e-9)
	assert.InDelta(t, 9.2, result.ChangeReturned, 1e-9)
	assert.True(t, result.DiscountApplied)
	assert.Equal(t, 1, result.PointsEarned)

	stored, err := env.store.Customers.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 121, stored.LoyaltyPoints)
}

func TestExitFinalizeCardIgnoresCashTendered(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	env.clk.Add(1 * time.Hour)
	result, err := env.parking.ExitFinalize(ticket.ID, db.PaymentCard, "VISA-4242", 0)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.Amount)
	assert.Equal(t, 0.0, result.ChangeReturned)
	assert.Equal(t, db.PaymentCard, result.Ticket.PaymentMethod)
	assert.Equal(t, "VISA-4242", result.Ticket.PaymentDetails)
}

func TestExitFinalizeGuestEarnsNoPoints(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	result, err := env.parking.ExitFinalize(ticket.ID, db.PaymentUPI, "alice@upi", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PointsEarned)
}

func TestExitFinalizeTwiceRejected(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	ticket, err := env.parking.Park("KA-01-1234", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	_, err = env.parking.ExitFinalize(ticket.ID, db.PaymentCash, "", 100)
	require.NoError(t, err)

	_, err = env.parking.ExitFinalize(ticket.ID, db.PaymentCash, "", 100)
	assert.True(t, errs.Is(err, errs.ErrTicketNotActive))
}

func TestExitFinalizeUnknownTicket(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0))

	_, err := env.parking.ExitFinalize("nope", db.PaymentCash, "", 100)
	assert.True(t, errs.Is(err, errs.ErrTicketNotFound))
}

func TestSpaceReusableAfterExit(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"))

	first, err := env.parking.Park("AAA", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	_, err = env.parking.ExitFinalize(first.ID, db.PaymentCash, "", 100)
	require.NoError(t, err)

	second, err := env.parking.Park("BBB", db.VehicleCar, "", nil, "")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "F1-A-1", second.SpaceID)
}

func TestActiveTickets(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0), carSpace("F1-A-1"), carSpace("F1-A-2"))

	first, err := env.parking.Park("AAA", db.VehicleCar, "", nil, "")
	require.NoError(t, err)
	_, err = env.parking.Park("BBB", db.VehicleCar, "", nil, "")
	require.NoError(t, err)

	_, err = env.parking.ExitFinalize(first.ID, db.PaymentCash, "", 100)
	require.NoError(t, err)

	active, err := env.parking.ActiveTickets()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "BBB", active[0].VehiclePlate)
}

func TestRegisterAndLookupCustomer(t *testing.T) {
	env := newTestEnv(t, weekday(9, 0))

	customer, err := env.parking.RegisterCustomer("alice", "555-0100", "alice@example.com", false)
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Zero(t, customer.LoyaltyPoints)
	assert.Equal(t, weekday(9, 0), customer.RegisteredAt)

	found, err := env.parking.FindCustomerByContact("555-0100")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, customer.ID, found.ID)
}
