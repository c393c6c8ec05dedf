package stats

import (
	"context"
	"testing"
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
	"frontdesk/internal/infra/storage/memory"
)

func date(day int, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	now := date(1, 0)

	plan, err := rooms.NewRatePlan("PEN", now)
	if err != nil {
		t.Fatalf("NewRatePlan: %v", err)
	}
	if err := plan.SetRate("Matrimonial", money.Must(500, "PEN"), now); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	roomRepo := memory.NewRoomRepository()
	occupied, _ := rooms.NewRoom(rooms.CreateParams{ID: "room-101", Number: "101", RateType: "Matrimonial", Now: now})
	if err := occupied.ChangeStatus(rooms.StatusOccupied, now); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	vacant, _ := rooms.NewRoom(rooms.CreateParams{ID: "room-102", Number: "102", RateType: "Matrimonial", Now: now})
	for _, room := range []*rooms.Room{occupied, vacant} {
		if err := roomRepo.Save(ctx, room); err != nil {
			t.Fatalf("Save room: %v", err)
		}
	}

	resRepo := memory.NewReservationRepository()
	closed, err := reservation.NewReservation(reservation.CreateParams{
		ID:         "res-1",
		CustomerID: "cust-1",
		RoomID:     "room-102",
		RateType:   "Matrimonial",
		Adults:     2,
		CheckIn:    date(5, 15),
		CheckOut:   date(8, 12),
		Total:      money.Must(1500, "PEN"),
		Now:        date(5, 15),
	})
	if err != nil {
		t.Fatalf("NewReservation: %v", err)
	}
	if err := closed.AddExtras([]billing.Extra{{Name: "Gaseosa", UnitPrice: money.Must(60, "PEN"), Quantity: 2}}, date(6, 10)); err != nil {
		t.Fatalf("AddExtras: %v", err)
	}
	if err := closed.CompleteCheckOut(date(8, 11)); err != nil {
		t.Fatalf("CompleteCheckOut: %v", err)
	}
	if err := resRepo.Save(ctx, closed); err != nil {
		t.Fatalf("Save reservation: %v", err)
	}

	open, err := reservation.NewReservation(reservation.CreateParams{
		ID:         "res-2",
		CustomerID: "cust-2",
		RoomID:     "room-101",
		RateType:   "Matrimonial",
		Adults:     1,
		CheckIn:    date(9, 15),
		CheckOut:   date(12, 12),
		Total:      money.Must(1500, "PEN"),
		Now:        date(9, 15),
	})
	if err != nil {
		t.Fatalf("NewReservation: %v", err)
	}
	if err := resRepo.Save(ctx, open); err != nil {
		t.Fatalf("Save reservation: %v", err)
	}

	expRepo := memory.NewExpenseRepository()
	entry, err := expense.NewExpense(expense.CreateParams{
		ID:          "exp-1",
		Category:    expense.CategorySupplies,
		Description: "toallas",
		Amount:      money.Must(250, "PEN"),
		IncurredAt:  date(7, 9),
		Now:         date(7, 9),
	})
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	if err := expRepo.Save(ctx, entry); err != nil {
		t.Fatalf("Save expense: %v", err)
	}

	service := &Service{
		Reservations: resRepo,
		Rooms:        roomRepo,
		Expenses:     expRepo,
		RatePlans:    memory.NewRatePlanRepository(plan),
	}
	dashboard, err := service.Dashboard(ctx, date(1, 0), date(31, 0))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if dashboard.RoomsTotal != 2 || dashboard.RoomsOccupied != 1 {
		t.Errorf("rooms = %d/%d, want 1/2", dashboard.RoomsOccupied, dashboard.RoomsTotal)
	}
	if dashboard.OccupancyRate != 0.5 {
		t.Errorf("OccupancyRate = %v, want 0.5", dashboard.OccupancyRate)
	}
	if dashboard.StaysCompleted != 1 {
		t.Errorf("StaysCompleted = %d, want 1", dashboard.StaysCompleted)
	}
	if got, want := dashboard.RoomRevenue.Amount, int64(1500); got != want {
		t.Errorf("RoomRevenue = %d, want %d", got, want)
	}
	if got, want := dashboard.ExtrasRevenue.Amount, int64(120); got != want {
		t.Errorf("ExtrasRevenue = %d, want %d", got, want)
	}
	if got, want := dashboard.TotalRevenue.Amount, int64(1620); got != want {
		t.Errorf("TotalRevenue = %d, want %d", got, want)
	}
	if got, want := dashboard.ExpensesTotal.Amount, int64(250); got != want {
		t.Errorf("ExpensesTotal = %d, want %d", got, want)
	}
	if got, want := dashboard.NetIncome.Amount, int64(1370); got != want {
		t.Errorf("NetIncome = %d, want %d", got, want)
	}
	if got := dashboard.RevenueByRateType["Matrimonial"]; got != 1500 {
		t.Errorf("RevenueByRateType = %v", dashboard.RevenueByRateType)
	}
}
