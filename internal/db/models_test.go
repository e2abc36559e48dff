package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/errs"
)

func TestParseVehicleType(t *testing.T) {
	vt, ok := ParseVehicleType("car")
	require.True(t, ok)
	assert.Equal(t, VehicleCar, vt)

	vt, ok = ParseVehicleType(" MOTORCYCLE ")
	require.True(t, ok)
	assert.Equal(t, VehicleBike, vt)

	_, ok = ParseVehicleType("boat")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("upi")
	require.True(t, ok)
	assert.Equal(t, PaymentUPI, m)

	_, ok = ParsePaymentMethod("check")
	assert.False(t, ok)
}

func TestSpaceOccupyAndRelease(t *testing.T) {
	space := NewParkingSpace("F1-A-1", 1, "A", VehicleCar, false)
	assert.Equal(t, SpaceAvailable, space.Status)

	require.NoError(t, space.Occupy("KA-01-1234"))
	assert.Equal(t, SpaceOccupied, space.Status)
	assert.Equal(t, "KA-01-1234", space.VehiclePlate)

	err := space.Occupy("other")
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))

	space.Release()
	assert.Equal(t, SpaceAvailable, space.Status)
	assert.Empty(t, space.VehiclePlate)

	// Releasing again stays a no-op.
	space.Release()
	assert.Equal(t, SpaceAvailable, space.Status)
}

func TestSpaceReserveTransitions(t *testing.T) {
	space := NewParkingSpace("F1-A-1", 1, "A", VehicleCar, false)

	require.NoError(t, space.Reserve())
	assert.Equal(t, SpaceReserved, space.Status)

	err := space.Reserve()
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))

	// A reserved space can be occupied when its hold is consumed.
	require.NoError(t, space.Occupy("KA-01-1234"))
	assert.Equal(t, SpaceOccupied, space.Status)

	err = space.Reserve()
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
}

func TestReservationValidityWindow(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	res := &Reservation{
		CreatedAt: created,
		ExpiresAt: created.Add(2 * time.Hour),
	}

	assert.True(t, res.IsValid(created))
	assert.True(t, res.IsValid(created.Add(time.Hour)))
	assert.True(t, res.IsValid(created.Add(2*time.Hour-time.Nanosecond)))

	boundary := created.Add(2 * time.Hour)
	assert.False(t, res.IsValid(boundary))
	assert.True(t, res.IsExpired(boundary))
	assert.False(t, res.IsExpired(boundary.Add(-time.Nanosecond)))
}

func TestUsedReservationNeverValid(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	res := &Reservation{
		CreatedAt: created,
		ExpiresAt: created.Add(2 * time.Hour),
		Used:      true,
	}
	assert.False(t, res.IsValid(created.Add(time.Hour)))
}

func TestCustomerLoyalty(t *testing.T) {
	c := &Customer{}
	assert.False(t, c.HasLoyaltyDiscount())

	c.AddLoyaltyPoints(99)
	assert.False(t, c.HasLoyaltyDiscount())

	c.AddLoyaltyPoints(1)
	assert.True(t, c.HasLoyaltyDiscount())

	// Negative additions are ignored.
	c.AddLoyaltyPoints(-50)
	assert.Equal(t, 100, c.LoyaltyPoints)

	assert.False(t, c.RedeemLoyaltyPoints(101))
	assert.True(t, c.RedeemLoyaltyPoints(40))
	assert.Equal(t, 60, c.LoyaltyPoints)
	assert.False(t, c.RedeemLoyaltyPoints(0))
}
