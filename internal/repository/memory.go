package repository

import (
	"sync"

	"smartparking/internal/db"
)

// NewMemoryStore builds an in-memory Store. Entities are stored by value
// and copied on the way in and out, so callers only change stored state
// through Save, the same contract the SQL store enforces. Iteration order
// is insertion order, which keeps allocation tie-breaking deterministic
// within a process run.
func NewMemoryStore() *Store {
	return &Store{
		Customers:    &memCustomerRepo{byID: map[int64]db.Customer{}},
		Vehicles:     &memVehicleRepo{byPlate: map[string]db.Vehicle{}},
		Spaces:       &memSpaceRepo{byID: map[string]db.ParkingSpace{}},
		Reservations: &memReservationRepo{byID: map[string]db.Reservation{}},
		Tickets:      &memTicketRepo{byID: map[string]db.ParkingTicket{}},
	}
}

type memCustomerRepo struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	byID   map[int64]db.Customer
}

func (r *memCustomerRepo) Save(c *db.Customer) (*db.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	}
	if _, ok := r.byID[c.ID]; !ok {
		r.order = append(r.order, c.ID)
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	r.byID[c.ID] = *c
	saved := *c
	return &saved, nil
}

func (r *memCustomerRepo) FindByID(id int64) (*db.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.byID[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCustomerRepo) FindByContact(contact string) (*db.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if c := r.byID[id]; c.Contact == contact {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) FindAll() ([]*db.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*db.Customer, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

type memVehicleRepo struct {
	mu      sync.RWMutex
	order   []string
	byPlate map[string]db.Vehicle
}

func (r *memVehicleRepo) Save(v *db.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPlate[v.LicensePlate]; !ok {
		r.order = append(r.order, v.LicensePlate)
	}
	r.byPlate[v.LicensePlate] = *v
	return nil
}

func (r *memVehicleRepo) FindByPlate(plate string) (*db.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.byPlate[plate]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}

func (r *memVehicleRepo) FindAll() ([]*db.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*db.Vehicle, 0, len(r.order))
	for _, plate := range r.order {
		v := r.byPlate[plate]
		cp := v
		out = append(out, &cp)
	}
	return out, nil
}

type memSpaceRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]db.ParkingSpace
}

func (r *memSpaceRepo) Save(s *db.ParkingSpace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *memSpaceRepo) FindByID(id string) (*db.ParkingSpace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byID[id]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *memSpaceRepo) FindAll() ([]*db.ParkingSpace, error) {
	return r.filter(func(db.ParkingSpace) bool { return true })
}

func (r *memSpaceRepo) FindByType(vt db.VehicleType) ([]*db.ParkingSpace, error) {
	return r.filter(func(s db.ParkingSpace) bool { return s.VehicleType == vt })
}

func (r *memSpaceRepo) FindByStatusAndType(status db.SpaceStatus, vt db.VehicleType) ([]*db.ParkingSpace, error) {
	return r.filter(func(s db.ParkingSpace) bool {
		return s.Status == status && s.VehicleType == vt
	})
}

func (r *memSpaceRepo) FindByStatusAndTypeAndHandicapped(status db.SpaceStatus, vt db.VehicleType, handicapped bool) ([]*db.ParkingSpace, error) {
	return r.filter(func(s db.ParkingSpace) bool {
		return s.Status == status && s.VehicleType == vt && s.Handicapped == handicapped
	})
}

func (r *memSpaceRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *memSpaceRepo) filter(keep func(db.ParkingSpace) bool) ([]*db.ParkingSpace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*db.ParkingSpace
	for _, id := range r.order {
		s := r.byID[id]
		if keep(s) {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memReservationRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]db.Reservation
}

func (r *memReservationRepo) Save(res *db.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[res.ID]; !ok {
		r.order = append(r.order, res.ID)
	}
	r.byID[res.ID] = *res
	return nil
}

func (r *memReservationRepo) FindByID(id string) (*db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if res, ok := r.byID[id]; ok {
		cp := res
		return &cp, nil
	}
	return nil, nil
}

func (r *memReservationRepo) FindAll() ([]*db.Reservation, error) {
	return r.filter(func(db.Reservation) bool { return true })
}

func (r *memReservationRepo) FindByUsedFalse() ([]*db.Reservation, error) {
	return r.filter(func(res db.Reservation) bool { return !res.Used })
}

func (r *memReservationRepo) filter(keep func(db.Reservation) bool) ([]*db.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*db.Reservation
	for _, id := range r.order {
		res := r.byID[id]
		if keep(res) {
			cp := res
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTicketRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]db.ParkingTicket
}

func (r *memTicketRepo) Save(t *db.ParkingTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.byID[t.ID] = *t
	return nil
}

func (r *memTicketRepo) FindByID(id string) (*db.ParkingTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.byID[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTicketRepo) FindAll() ([]*db.ParkingTicket, error) {
	return r.filter(func(db.ParkingTicket) bool { return true })
}

func (r *memTicketRepo) FindByStatus(status db.TicketStatus) ([]*db.ParkingTicket, error) {
	return r.filter(func(t db.ParkingTicket) bool { return t.Status == status })
}

func (r *memTicketRepo) filter(keep func(db.ParkingTicket) bool) ([]*db.ParkingTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*db.ParkingTicket
	for _, id := range r.order {
		t := r.byID[id]
		if keep(t) {
			cp := t
			out = append(out, &cp)
		}
	}
	return out, nil
}
