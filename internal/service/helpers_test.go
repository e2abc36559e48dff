package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smartparking/internal/clock"
	"smartparking/internal/db"
	"smartparking/internal/repository"
)

type testEnv struct {
	store        *repository.Store
	clk          *clock.MockClock
	registry     *SpaceRegistry
	reservations *ReservationService
	parking      *ParkingService
}

func newTestEnv(t *testing.T, now time.Time, spaces ...*db.ParkingSpace) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	for _, sp := range spaces {
		require.NoError(t, store.Spaces.Save(sp))
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(now)
	registry := NewSpaceRegistry(store.Spaces)
	reservations := NewReservationService(store, registry, clk, log, nil, nil)
	parking := NewParkingService(store, registry, reservations, NewPricingEngine(), clk, log, nil)

	return &testEnv{
		store:        store,
		clk:          clk,
		registry:     registry,
		reservations: reservations,
		parking:      parking,
	}
}

func (e *testEnv) registerCustomer(t *testing.T, name string, handicapped bool, loyaltyPoints int) *db.Customer {
	t.Helper()
	customer, err := e.parking.RegisterCustomer(name, name+"-contact", name+"@example.com", handicapped)
	require.NoError(t, err)
	if loyaltyPoints > 0 {
		customer.AddLoyaltyPoints(loyaltyPoints)
		customer, err = e.store.Customers.Save(customer)
		require.NoError(t, err)
	}
	return customer
}

func (e *testEnv) spaceStatus(t *testing.T, id string) db.SpaceStatus {
	t.Helper()
	space, err := e.store.Spaces.FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, space)
	return space.Status
}
