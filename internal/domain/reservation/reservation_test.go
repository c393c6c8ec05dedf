package reservation

import (
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func pen(amount int64) money.Money {
	return money.Money{Amount: amount, Currency: "PEN"}
}

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	res, err := NewReservation(CreateParams{
		ID:         "res-1",
		CustomerID: "cust-1",
		RoomID:     "room-101",
		RateType:   "Matrimonial",
		Adults:     2,
		CheckIn:    ts("2024-01-10T15:00"),
		CheckOut:   ts("2024-01-14T12:00"),
		Total:      pen(2000),
		Now:        ts("2024-01-10T15:00"),
	})
	if err != nil {
		t.Fatalf("NewReservation: %v", err)
	}
	return res
}

func TestNewReservationValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{"missing customer", func(p *CreateParams) { p.CustomerID = " " }, ErrCustomerRequired},
		{"missing room", func(p *CreateParams) { p.RoomID = "" }, ErrRoomRequired},
		{"no adults", func(p *CreateParams) { p.Adults = 0 }, ErrInvalidGuests},
		{"checkout before checkin", func(p *CreateParams) { p.CheckOut = ts("2024-01-09T12:00") }, ErrCheckOutTooEarly},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := CreateParams{
				ID:         "res-1",
				CustomerID: "cust-1",
				RoomID:     "room-101",
				Adults:     1,
				CheckIn:    ts("2024-01-10T15:00"),
				CheckOut:   ts("2024-01-14T12:00"),
			}
			tc.mutate(&params)
			if _, err := NewReservation(params); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewReservationRecordsCheckedIn(t *testing.T) {
	res := newTestReservation(t)
	events := res.PendingEvents()
	if len(events) != 1 || events[0].EventName() != "reservation.checked_in" {
		t.Fatalf("pending events = %+v, want one reservation.checked_in", events)
	}
}

func TestValidateEdit(t *testing.T) {
	res := newTestReservation(t)
	res.Segments = []billing.Segment{{RoomID: "room-101", RateType: "Matrimonial", MovedAt: ts("2024-01-12T10:00")}}

	if err := res.ValidateEdit(ts("2024-01-13T12:00")); err != nil {
		t.Errorf("valid edit rejected: %v", err)
	}
	if err := res.ValidateEdit(ts("2024-01-10T09:00")); !errors.Is(err, ErrCheckOutTooEarly) {
		t.Errorf("before check-in: err = %v", err)
	}
	if err := res.ValidateEdit(ts("2024-01-12T09:00")); !errors.Is(err, ErrCheckOutTooEarly) {
		t.Errorf("before segment boundary: err = %v", err)
	}

	res.State = StateCheckedOut
	if err := res.ValidateEdit(ts("2024-01-13T12:00")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("closed stay: err = %v", err)
	}
}

func TestApplyStayEditFreezesSegment(t *testing.T) {
	res := newTestReservation(t)
	res.ClearEvents()
	movedAt := ts("2024-01-12T10:00")

	err := res.ApplyStayEdit(billing.Result{
		Total:           pen(2800),
		RoomChanged:     true,
		AppendedSegment: &billing.Segment{RoomID: "room-101", RateType: "Matrimonial", MovedAt: movedAt},
		RoomID:          "room-102",
		RateType:        "Unipersonal",
		CheckOut:        ts("2024-01-16T12:00"),
	}, movedAt)
	if err != nil {
		t.Fatalf("ApplyStayEdit: %v", err)
	}

	if len(res.Segments) != 1 || res.Segments[0].RoomID != "room-101" {
		t.Errorf("Segments = %+v", res.Segments)
	}
	if res.RoomID != "room-102" || res.RateType != "Unipersonal" {
		t.Errorf("current room = %s/%s", res.RoomID, res.RateType)
	}
	if res.TotalDue != pen(2800) {
		t.Errorf("TotalDue = %+v", res.TotalDue)
	}
	if res.SegmentNights() != res.Nights() {
		t.Errorf("SegmentNights = %d, Nights = %d", res.SegmentNights(), res.Nights())
	}

	events := res.PendingEvents()
	if len(events) != 1 || events[0].EventName() != "reservation.stay_edited" {
		t.Fatalf("pending events = %+v", events)
	}
}

func TestApplyStayEditReportsMissingRates(t *testing.T) {
	res := newTestReservation(t)
	res.ClearEvents()

	err := res.ApplyStayEdit(billing.Result{
		Total:        pen(0),
		RoomID:       res.RoomID,
		RateType:     "Suite",
		CheckOut:     res.CheckOut,
		MissingRates: []rooms.RateType{"Suite"},
	}, ts("2024-01-11T10:00"))
	if err != nil {
		t.Fatalf("ApplyStayEdit: %v", err)
	}
	var sawMiss bool
	for _, event := range res.PendingEvents() {
		if event.EventName() == "billing.rate_lookup_missed" {
			sawMiss = true
		}
	}
	if !sawMiss {
		t.Error("expected a billing.rate_lookup_missed event")
	}
}

func TestAddExtras(t *testing.T) {
	res := newTestReservation(t)

	err := res.AddExtras([]billing.Extra{
		{Name: "Gaseosa", UnitPrice: pen(60), Quantity: 2},
		{Name: "Lavanderia", UnitPrice: pen(300), Quantity: 1},
	}, ts("2024-01-11T10:00"))
	if err != nil {
		t.Fatalf("AddExtras: %v", err)
	}
	if got, want := res.TotalDue, pen(2000+120+300); got != want {
		t.Errorf("TotalDue = %+v, want %+v", got, want)
	}

	if err := res.AddExtras([]billing.Extra{{Name: "", UnitPrice: pen(10), Quantity: 1}}, ts("2024-01-11T10:00")); !errors.Is(err, ErrInvalidExtra) {
		t.Errorf("nameless extra: err = %v", err)
	}
	if err := res.AddExtras([]billing.Extra{{Name: "Agua", UnitPrice: pen(10), Quantity: 0}}, ts("2024-01-11T10:00")); !errors.Is(err, ErrInvalidExtra) {
		t.Errorf("zero quantity: err = %v", err)
	}
	usd := money.Money{Amount: 10, Currency: "USD"}
	if err := res.AddExtras([]billing.Extra{{Name: "Agua", UnitPrice: usd, Quantity: 1}}, ts("2024-01-11T10:00")); !errors.Is(err, ErrExtraCurrency) {
		t.Errorf("foreign currency: err = %v", err)
	}
	if got, want := res.TotalDue, pen(2000+120+300); got != want {
		t.Errorf("TotalDue after rejected extras = %+v, want %+v", got, want)
	}
}

func TestLifecycle(t *testing.T) {
	res := newTestReservation(t)

	if err := res.CompleteCheckOut(ts("2024-01-14T11:00")); err != nil {
		t.Fatalf("CompleteCheckOut: %v", err)
	}
	if res.State != StateCheckedOut {
		t.Errorf("State = %s", res.State)
	}
	if err := res.CompleteCheckOut(ts("2024-01-14T11:05")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double checkout: err = %v", err)
	}
	if err := res.Cancel("typo", ts("2024-01-14T11:05")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel after checkout: err = %v", err)
	}

	fresh := newTestReservation(t)
	if err := fresh.Cancel("walk-out", ts("2024-01-10T16:00")); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if fresh.State != StateCancelled {
		t.Errorf("State = %s", fresh.State)
	}
}
