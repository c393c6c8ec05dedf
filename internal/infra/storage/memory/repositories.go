package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
)

// ReservationRepository is an in-memory implementation used by tests and
// the bootstrap mode when Mongo is not configured.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[reservation.ReservationID]*reservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[reservation.ReservationID]*reservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	return res, nil
}

func (r *ReservationRepository) ActiveByRoom(ctx context.Context, roomID rooms.RoomID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.items {
		if res.RoomID == roomID && res.State == reservation.StateCheckedIn {
			return res, nil
		}
	}
	return nil, reservation.ErrNotFound
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*reservation.Reservation, 0)
	for _, res := range r.items {
		if res.State == reservation.StateCheckedIn {
			out = append(out, res)
		}
	}
	sortByCheckIn(out)
	return out, nil
}

func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID string) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*reservation.Reservation, 0)
	for _, res := range r.items {
		if res.CustomerID == customerID {
			out = append(out, res)
		}
	}
	sortByCheckIn(out)
	return out, nil
}

func (r *ReservationRepository) ListCheckedOutBetween(ctx context.Context, from, to time.Time) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*reservation.Reservation, 0)
	for _, res := range r.items {
		if res.State != reservation.StateCheckedOut {
			continue
		}
		if res.UpdatedAt.Before(from) || res.UpdatedAt.After(to) {
			continue
		}
		out = append(out, res)
	}
	sortByCheckIn(out)
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[res.ID] = res
	return nil
}

func sortByCheckIn(list []*reservation.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CheckIn.Before(list[j].CheckIn)
	})
}

type RoomRepository struct {
	mu    sync.RWMutex
	items map[rooms.RoomID]*rooms.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[rooms.RoomID]*rooms.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id rooms.RoomID) (*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	return room, nil
}

func (r *RoomRepository) ByNumber(ctx context.Context, number string) (*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.items {
		if strings.EqualFold(room.Number, number) {
			return room, nil
		}
	}
	return nil, rooms.ErrRoomNotFound
}

func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*rooms.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.items {
		if id != room.ID && strings.EqualFold(existing.Number, room.Number) {
			return rooms.ErrNumberTaken
		}
	}
	r.items[room.ID] = room
	return nil
}

type RatePlanRepository struct {
	mu   sync.RWMutex
	plan *rooms.RatePlan
}

func NewRatePlanRepository(plan *rooms.RatePlan) *RatePlanRepository {
	return &RatePlanRepository{plan: plan}
}

func (r *RatePlanRepository) Load(ctx context.Context) (*rooms.RatePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.plan == nil {
		return nil, rooms.ErrRatePlanNotFound
	}
	return r.plan, nil
}

func (r *RatePlanRepository) Save(ctx context.Context, plan *rooms.RatePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan = plan
	return nil
}

type CustomerRepository struct {
	mu    sync.RWMutex
	items map[customer.ID]*customer.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{items: make(map[customer.ID]*customer.Customer)}
}

func (r *CustomerRepository) ByID(ctx context.Context, id customer.ID) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	guest, ok := r.items[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return guest, nil
}

func (r *CustomerRepository) ByDocument(ctx context.Context, documentID string) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, guest := range r.items {
		if guest.DocumentID == strings.TrimSpace(documentID) {
			return guest, nil
		}
	}
	return nil, customer.ErrNotFound
}

func (r *CustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*customer.Customer, 0, len(r.items))
	for _, guest := range r.items {
		out = append(out, guest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *CustomerRepository) Save(ctx context.Context, guest *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.items {
		if id != guest.ID && existing.DocumentID == guest.DocumentID {
			return customer.ErrDocumentTaken
		}
	}
	r.items[guest.ID] = guest
	return nil
}

type ExpenseRepository struct {
	mu    sync.RWMutex
	items map[expense.ID]*expense.Expense
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{items: make(map[expense.ID]*expense.Expense)}
}

func (r *ExpenseRepository) ByID(ctx context.Context, id expense.ID) (*expense.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[id]
	if !ok {
		return nil, expense.ErrNotFound
	}
	return entry, nil
}

func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*expense.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*expense.Expense, 0)
	for _, entry := range r.items {
		if entry.IncurredAt.Before(from) || entry.IncurredAt.After(to) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IncurredAt.Before(out[j].IncurredAt) })
	return out, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, entry *expense.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[entry.ID] = entry
	return nil
}
