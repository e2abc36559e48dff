package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/backup"
	"smartparking/internal/db"
	"smartparking/internal/repository"
)

func TestSeederCreatesDefaultLayout(t *testing.T) {
	store := repository.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	seeder := NewSeeder(store, nil, log)
	require.NoError(t, seeder.Initialize())

	count, err := store.Spaces.Count()
	require.NoError(t, err)
	assert.Equal(t, 90, count)

	cars, err := store.Spaces.FindByType(db.VehicleCar)
	require.NoError(t, err)
	assert.Len(t, cars, 30)

	bikes, err := store.Spaces.FindByType(db.VehicleBike)
	require.NoError(t, err)
	assert.Len(t, bikes, 45)

	trucks, err := store.Spaces.FindByType(db.VehicleTruck)
	require.NoError(t, err)
	assert.Len(t, trucks, 15)

	handicapped, err := store.Spaces.FindByStatusAndTypeAndHandicapped(db.SpaceAvailable, db.VehicleCar, true)
	require.NoError(t, err)
	assert.Len(t, handicapped, 6)

	first, err := store.Spaces.FindByID("F1-A-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, db.SpaceAvailable, first.Status)
}

func TestSeederSkipsNonEmptyStore(t *testing.T) {
	store := repository.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, store.Spaces.Save(db.NewParkingSpace("X-1", 1, "X", db.VehicleCar, false)))

	seeder := NewSeeder(store, nil, log)
	require.NoError(t, seeder.Initialize())

	count, err := store.Spaces.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeederRestoresFromSnapshot(t *testing.T) {
	backups, err := backup.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	spaces := []*db.ParkingSpace{
		db.NewParkingSpace("F1-A-1", 1, "A", db.VehicleCar, false),
	}
	spaces[0].Status = db.SpaceOccupied
	spaces[0].VehiclePlate = "KA-01-1234"
	customers := []*db.Customer{{ID: 1, Name: "alice", Contact: "555-0100", LoyaltyPoints: 120}}
	require.NoError(t, backups.SaveSnapshot(customers, nil, nil, spaces))

	store := repository.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	seeder := NewSeeder(store, backups, log)
	require.NoError(t, seeder.Initialize())

	count, err := store.Spaces.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	space, err := store.Spaces.FindByID("F1-A-1")
	require.NoError(t, err)
	require.NotNil(t, space)
	assert.Equal(t, db.SpaceOccupied, space.Status)
	assert.Equal(t, "KA-01-1234", space.VehiclePlate)

	customer, err := store.Customers.FindByID(1)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, 120, customer.LoyaltyPoints)
}

func TestSeederFallsBackToDefaultsOnEmptySnapshot(t *testing.T) {
	backups, err := backup.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	seeder := NewSeeder(store, backups, log)
	require.NoError(t, seeder.Initialize())

	count, err := store.Spaces.Count()
	require.NoError(t, err)
	assert.Equal(t, 90, count)
}
