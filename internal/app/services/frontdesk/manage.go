package frontdesk

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

type CreateRoomParams struct {
	Number   string
	Floor    int
	RateType rooms.RateType
	Notes    string
}

// CreateRoom adds a room to the inventory. New rooms start available.
func (s *Service) CreateRoom(ctx context.Context, params CreateRoomParams) (*rooms.Room, error) {
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:       rooms.RoomID(uuid.NewString()),
		Number:   params.Number,
		Floor:    params.Floor,
		RateType: params.RateType,
		Notes:    params.Notes,
		Now:      s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetRoomStatus drives housekeeping transitions (cleaning done,
// maintenance open/closed). A room with an active reservation cannot be
// forced back to available.
func (s *Service) SetRoomStatus(ctx context.Context, id rooms.RoomID, next rooms.Status) (*rooms.Room, error) {
	room, err := s.Rooms.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if next == rooms.StatusAvailable {
		if _, err := s.Reservations.ActiveByRoom(ctx, id); err == nil {
			return nil, ErrRoomOccupied
		}
	}
	if err := room.ChangeStatus(next, s.now()); err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// RatePlan exposes the current nightly price table.
func (s *Service) RatePlan(ctx context.Context) (*rooms.RatePlan, error) {
	return s.RatePlans.Load(ctx)
}

// SetNightlyRate upserts the price for one rate type. Prices take effect
// on the next recalculation; totals already persisted are untouched. The
// first write against a fresh database bootstraps the plan document.
func (s *Service) SetNightlyRate(ctx context.Context, rt rooms.RateType, amount int64) (*rooms.RatePlan, error) {
	plan, err := s.RatePlans.Load(ctx)
	if errors.Is(err, rooms.ErrRatePlanNotFound) {
		plan, err = rooms.NewRatePlan(s.Currency, s.now())
	}
	if err != nil {
		return nil, err
	}
	nightly := money.Money{Amount: amount, Currency: plan.Currency}
	if err := plan.SetRate(rt, nightly, s.now()); err != nil {
		return nil, err
	}
	if err := s.RatePlans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

type RecordExpenseParams struct {
	Category    expense.Category
	Description string
	Amount      int64
	IncurredAt  time.Time
	RecordedBy  string
}

// RecordExpense books an operating cost in the plan currency.
func (s *Service) RecordExpense(ctx context.Context, params RecordExpenseParams) (*expense.Expense, error) {
	plan, err := s.RatePlans.Load(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := expense.NewExpense(expense.CreateParams{
		ID:          expense.ID(uuid.NewString()),
		Category:    params.Category,
		Description: params.Description,
		Amount:      money.Money{Amount: params.Amount, Currency: plan.Currency},
		IncurredAt:  params.IncurredAt,
		RecordedBy:  params.RecordedBy,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Expenses.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListExpenses returns cost entries incurred inside the window.
func (s *Service) ListExpenses(ctx context.Context, from, to time.Time) ([]*expense.Expense, error) {
	return s.Expenses.ListBetween(ctx, from, to)
}

// ListCustomers returns the guest directory.
func (s *Service) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	return s.Customers.List(ctx)
}
