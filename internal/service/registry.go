package service

import (
	"sync"

	"smartparking/internal/db"
	"smartparking/internal/errs"
	"smartparking/internal/repository"
)

// SpaceRegistry owns every parking space status transition. All reads used
// for allocation and the transitions they lead to run under one registry
// mutex, so two concurrent park or reserve requests can never both win the
// same space. Other services request transitions here and never touch
// space status directly.
type SpaceRegistry struct {
	mu     sync.Mutex
	spaces repository.SpaceRepository
}

func NewSpaceRegistry(spaces repository.SpaceRepository) *SpaceRegistry {
	return &SpaceRegistry{spaces: spaces}
}

// FindAllocatable returns one AVAILABLE space compatible with vt, or nil
// when the lot is full for that type. With preferHandicapped, handicapped
// spaces are searched first and any compatible space is the fallback.
func (r *SpaceRegistry) FindAllocatable(vt db.VehicleType, preferHandicapped bool) (*db.ParkingSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAllocatable(vt, preferHandicapped)
}

func (r *SpaceRegistry) findAllocatable(vt db.VehicleType, preferHandicapped bool) (*db.ParkingSpace, error) {
	if preferHandicapped {
		spaces, err := r.spaces.FindByStatusAndTypeAndHandicapped(db.SpaceAvailable, vt, true)
		if err != nil {
			return nil, err
		}
		if len(spaces) > 0 {
			return spaces[0], nil
		}
	}
	spaces, err := r.spaces.FindByStatusAndType(db.SpaceAvailable, vt)
	if err != nil {
		return nil, err
	}
	if len(spaces) == 0 {
		return nil, nil
	}
	return spaces[0], nil
}

// AllocateOccupied searches and occupies in one critical section.
func (r *SpaceRegistry) AllocateOccupied(vt db.VehicleType, preferHandicapped bool, plate string) (*db.ParkingSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.findAllocatable(vt, preferHandicapped)
	if err != nil || space == nil {
		return nil, err
	}
	if err := space.Occupy(plate); err != nil {
		return nil, err
	}
	if err := r.spaces.Save(space); err != nil {
		return nil, err
	}
	return space, nil
}

// AllocateReserved searches and reserves in one critical section.
func (r *SpaceRegistry) AllocateReserved(vt db.VehicleType, preferHandicapped bool) (*db.ParkingSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.findAllocatable(vt, preferHandicapped)
	if err != nil || space == nil {
		return nil, err
	}
	if err := space.Reserve(); err != nil {
		return nil, err
	}
	if err := r.spaces.Save(space); err != nil {
		return nil, err
	}
	return space, nil
}

// Occupy transitions a known space (AVAILABLE or RESERVED) to OCCUPIED.
// Used when a consumed reservation already names the space.
func (r *SpaceRegistry) Occupy(spaceID, plate string) (*db.ParkingSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.spaces.FindByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, errs.Wrapf(errs.ErrSpaceNotFound, "space %s", spaceID)
	}
	if err := space.Occupy(plate); err != nil {
		return nil, err
	}
	if err := r.spaces.Save(space); err != nil {
		return nil, err
	}
	return space, nil
}

// Release frees a space. Releasing an AVAILABLE space is a no-op.
func (r *SpaceRegistry) Release(spaceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.spaces.FindByID(spaceID)
	if err != nil {
		return err
	}
	if space == nil {
		return errs.Wrapf(errs.ErrSpaceNotFound, "space %s", spaceID)
	}
	if space.Status == db.SpaceAvailable {
		return nil
	}
	space.Release()
	return r.spaces.Save(space)
}

// Reserve transitions an AVAILABLE space to RESERVED.
func (r *SpaceRegistry) Reserve(spaceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.spaces.FindByID(spaceID)
	if err != nil {
		return err
	}
	if space == nil {
		return errs.Wrapf(errs.ErrSpaceNotFound, "space %s", spaceID)
	}
	if err := space.Reserve(); err != nil {
		return err
	}
	return r.spaces.Save(space)
}
