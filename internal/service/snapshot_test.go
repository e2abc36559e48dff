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

func TestSnapshotterMirrorsStore(t *testing.T) {
	store := repository.NewMemoryStore()
	require.NoError(t, store.Spaces.Save(db.NewParkingSpace("F1-A-1", 1, "A", db.VehicleCar, false)))
	_, err := store.Customers.Save(&db.Customer{Name: "alice"})
	require.NoError(t, err)

	sink, err := backup.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	NewSnapshotter(store, sink, log).Save()

	spaces, err := sink.LoadParkingSpaces()
	require.NoError(t, err)
	assert.Len(t, spaces, 1)

	customers, err := sink.LoadCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "alice", customers[0].Name)
}

func TestNilSnapshotterIsNoOp(t *testing.T) {
	var s *Snapshotter
	s.Save()

	NewSnapshotter(repository.NewMemoryStore(), nil, nil).Save()
}
