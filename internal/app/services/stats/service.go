package stats

import (
	"context"
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

// Service computes the dashboard figures from completed stays and
// recorded expenses. It never mutates anything.
type Service struct {
	Reservations reservation.Repository
	Rooms        rooms.Repository
	Expenses     expense.Repository
	RatePlans    rooms.RatePlanRepository
}

type Dashboard struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	RoomsTotal    int     `json:"rooms_total"`
	RoomsOccupied int     `json:"rooms_occupied"`
	OccupancyRate float64 `json:"occupancy_rate"`

	StaysCompleted int         `json:"stays_completed"`
	RoomRevenue    money.Money `json:"room_revenue"`
	ExtrasRevenue  money.Money `json:"extras_revenue"`
	TotalRevenue   money.Money `json:"total_revenue"`
	ExpensesTotal  money.Money `json:"expenses_total"`
	NetIncome      money.Money `json:"net_income"`

	RevenueByRateType map[string]int64 `json:"revenue_by_rate_type"`
}

func (s *Service) Dashboard(ctx context.Context, from, to time.Time) (Dashboard, error) {
	plan, err := s.RatePlans.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	currency := plan.Currency

	out := Dashboard{
		From:              from.UTC(),
		To:                to.UTC(),
		RevenueByRateType: make(map[string]int64),
	}

	all, err := s.Rooms.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	out.RoomsTotal = len(all)
	for _, room := range all {
		if room.Status == rooms.StatusOccupied {
			out.RoomsOccupied++
		}
	}
	if out.RoomsTotal > 0 {
		out.OccupancyRate = float64(out.RoomsOccupied) / float64(out.RoomsTotal)
	}

	stays, err := s.Reservations.ListCheckedOutBetween(ctx, from, to)
	if err != nil {
		return Dashboard{}, err
	}
	var roomRevenue, extrasRevenue int64
	for _, stay := range stays {
		extras := billing.ExtrasTotal(stay.Extras, currency).Amount
		room := stay.TotalDue.Amount - extras
		roomRevenue += room
		extrasRevenue += extras
		out.RevenueByRateType[string(stay.RateType)] += room
	}
	out.StaysCompleted = len(stays)

	entries, err := s.Expenses.ListBetween(ctx, from, to)
	if err != nil {
		return Dashboard{}, err
	}
	var expensesTotal int64
	for _, entry := range entries {
		expensesTotal += entry.Amount.Amount
	}

	out.RoomRevenue = money.Money{Amount: roomRevenue, Currency: currency}
	out.ExtrasRevenue = money.Money{Amount: extrasRevenue, Currency: currency}
	out.TotalRevenue = money.Money{Amount: roomRevenue + extrasRevenue, Currency: currency}
	out.ExpensesTotal = money.Money{Amount: expensesTotal, Currency: currency}
	out.NetIncome = money.Money{Amount: roomRevenue + extrasRevenue - expensesTotal, Currency: currency}
	return out, nil
}
