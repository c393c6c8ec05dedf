package rooms

import (
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/shared/money"
)

var now = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	room, err := NewRoom(CreateParams{ID: "room-101", Number: "101", Floor: 1, RateType: "Matrimonial", Now: now})
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	return room
}

func TestNewRoomStartsAvailable(t *testing.T) {
	room := newTestRoom(t)
	if room.Status != StatusAvailable {
		t.Errorf("Status = %s, want %s", room.Status, StatusAvailable)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"check-in", StatusAvailable, StatusOccupied, true},
		{"checkout", StatusOccupied, StatusCleaning, true},
		{"housekeeping done", StatusCleaning, StatusAvailable, true},
		{"maintenance opens", StatusAvailable, StatusMaintenance, true},
		{"maintenance closes", StatusMaintenance, StatusAvailable, true},
		{"skip cleaning", StatusCleaning, StatusOccupied, false},
		{"maintenance on occupied", StatusOccupied, StatusMaintenance, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := newTestRoom(t)
			room.Status = tc.from
			err := room.ChangeStatus(tc.to, now)
			if tc.ok && err != nil {
				t.Fatalf("ChangeStatus(%s -> %s): %v", tc.from, tc.to, err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("ChangeStatus(%s -> %s): err = %v, want ErrInvalidTransition", tc.from, tc.to, err)
			}
		})
	}
}

func TestChangeStatusSameStateIsNoop(t *testing.T) {
	room := newTestRoom(t)
	if err := room.ChangeStatus(StatusAvailable, now); err != nil {
		t.Fatalf("ChangeStatus to same state: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus(" cleaning "); err != nil || s != StatusCleaning {
		t.Errorf("ParseStatus = %s, %v", s, err)
	}
	if _, err := ParseStatus("vacant"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status: err = %v", err)
	}
}

func TestRatePlan(t *testing.T) {
	plan, err := NewRatePlan("pen", now)
	if err != nil {
		t.Fatalf("NewRatePlan: %v", err)
	}
	if plan.Currency != "PEN" {
		t.Errorf("Currency = %q", plan.Currency)
	}

	if err := plan.SetRate("Doble", money.Money{Amount: 600, Currency: "PEN"}, now); err != nil {
		t.Fatalf("SetRate: %v", err)
	}
	if err := plan.SetRate("Doble", money.Money{Amount: 600, Currency: "USD"}, now); !errors.Is(err, money.ErrCurrencyMismatch) {
		t.Errorf("wrong currency: err = %v", err)
	}
	if err := plan.SetRate("Doble", money.Money{Amount: -1, Currency: "PEN"}, now); !errors.Is(err, ErrNegativeRate) {
		t.Errorf("negative rate: err = %v", err)
	}

	price, ok := plan.NightlyRate("Doble")
	if !ok || price.Amount != 600 {
		t.Errorf("NightlyRate = %+v, %v", price, ok)
	}
	if _, ok := plan.NightlyRate("Suite"); ok {
		t.Error("NightlyRate for unconfigured type should report missing")
	}

	rates := plan.Rates()
	rates["Doble"] = money.Money{Amount: 0, Currency: "PEN"}
	if price, _ := plan.NightlyRate("Doble"); price.Amount != 600 {
		t.Error("Rates() must return a copy")
	}
}
