package frontdesk

import (
	"context"
	"errors"
	"testing"
	"time"

	appoutbox "frontdesk/internal/app/outbox"
	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
	"frontdesk/internal/infra/storage/memory"
)

type fixture struct {
	service *Service
	outbox  *memory.Outbox
	clock   *time.Time
	guest   *customer.Customer
	room101 *rooms.Room
	room102 *rooms.Room
}

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := ts("2024-01-10T15:00")

	plan, err := rooms.NewRatePlan("PEN", now)
	if err != nil {
		t.Fatalf("NewRatePlan: %v", err)
	}
	for rt, amount := range map[rooms.RateType]int64{
		"Unipersonal": 400,
		"Matrimonial": 500,
		"Doble":       600,
	} {
		if err := plan.SetRate(rt, money.Money{Amount: amount, Currency: "PEN"}, now); err != nil {
			t.Fatalf("SetRate: %v", err)
		}
	}

	f := &fixture{
		outbox: memory.NewOutbox(),
		clock:  &now,
	}
	f.service = &Service{
		Reservations: memory.NewReservationRepository(),
		Rooms:        memory.NewRoomRepository(),
		RatePlans:    memory.NewRatePlanRepository(plan),
		Customers:    memory.NewCustomerRepository(),
		Expenses:     memory.NewExpenseRepository(),
		Outbox:       f.outbox,
		Encoder:      appoutbox.JSONEventEncoder{},
		Currency:     "PEN",
		Clock:        func() time.Time { return *f.clock },
	}

	ctx := context.Background()
	f.guest, err = f.service.RegisterCustomer(ctx, RegisterCustomerParams{
		FullName:   "Maria Quispe",
		DocumentID: "45871236",
		Phone:      "+51 999 111 222",
	})
	if err != nil {
		t.Fatalf("RegisterCustomer: %v", err)
	}
	f.room101, err = f.service.CreateRoom(ctx, CreateRoomParams{Number: "101", Floor: 1, RateType: "Matrimonial"})
	if err != nil {
		t.Fatalf("CreateRoom 101: %v", err)
	}
	f.room102, err = f.service.CreateRoom(ctx, CreateRoomParams{Number: "102", Floor: 1, RateType: "Unipersonal"})
	if err != nil {
		t.Fatalf("CreateRoom 102: %v", err)
	}
	return f
}

func (f *fixture) checkIn(t *testing.T, room *rooms.Room, rateType rooms.RateType, checkOut time.Time) *reservation.Reservation {
	t.Helper()
	res, err := f.service.CheckIn(context.Background(), CheckInParams{
		CustomerID: string(f.guest.ID),
		RoomID:     room.ID,
		RateType:   rateType,
		Adults:     1,
		CheckOut:   checkOut,
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	return res
}

func TestCheckInOccupiesRoomAndPricesStay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-14T12:00"))

	if got, want := res.TotalDue.Amount, int64(4*500); got != want {
		t.Errorf("TotalDue = %d, want %d", got, want)
	}
	if res.State != reservation.StateCheckedIn {
		t.Errorf("State = %s, want %s", res.State, reservation.StateCheckedIn)
	}
	room, err := f.service.Rooms.ByID(ctx, f.room101.ID)
	if err != nil {
		t.Fatalf("Rooms.ByID: %v", err)
	}
	if room.Status != rooms.StatusOccupied {
		t.Errorf("room status = %s, want %s", room.Status, rooms.StatusOccupied)
	}
	records := f.outbox.Records()
	if len(records) != 1 || records[0].Name != "reservation.checked_in" {
		t.Errorf("outbox records = %+v, want one reservation.checked_in", records)
	}
}

func TestCheckInRejectsUnavailableRoom(t *testing.T) {
	f := newFixture(t)

	f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-14T12:00"))
	_, err := f.service.CheckIn(context.Background(), CheckInParams{
		CustomerID: string(f.guest.ID),
		RoomID:     f.room101.ID,
		RateType:   "Matrimonial",
		Adults:     1,
		CheckOut:   ts("2024-01-12T12:00"),
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
}

func TestEditStayRoomMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room102, "Unipersonal", ts("2024-01-15T12:00"))
	*f.clock = ts("2024-01-12T10:00")

	updated, outcome, err := f.service.EditStay(ctx, EditStayParams{
		ReservationID: res.ID,
		RoomID:        f.room101.ID,
		RateType:      "Matrimonial",
		CheckOut:      ts("2024-01-16T12:00"),
	})
	if err != nil {
		t.Fatalf("EditStay: %v", err)
	}

	// Two nights in 102 at 400, four remaining nights in 101 at 500.
	if got, want := updated.TotalDue.Amount, int64(2*400+4*500); got != want {
		t.Errorf("TotalDue = %d, want %d", got, want)
	}
	if !outcome.RoomChanged {
		t.Error("RoomChanged = false, want true")
	}
	if len(updated.Segments) != 1 {
		t.Fatalf("Segments = %d, want 1", len(updated.Segments))
	}
	seg := updated.Segments[0]
	if seg.RoomID != f.room102.ID || seg.RateType != "Unipersonal" || !seg.MovedAt.Equal(*f.clock) {
		t.Errorf("frozen segment = %+v", seg)
	}
	if updated.SegmentNights() != updated.Nights() {
		t.Errorf("SegmentNights = %d, Nights = %d", updated.SegmentNights(), updated.Nights())
	}

	vacated, _ := f.service.Rooms.ByID(ctx, f.room102.ID)
	if vacated.Status != rooms.StatusCleaning {
		t.Errorf("vacated room status = %s, want %s", vacated.Status, rooms.StatusCleaning)
	}
	next, _ := f.service.Rooms.ByID(ctx, f.room101.ID)
	if next.Status != rooms.StatusOccupied {
		t.Errorf("next room status = %s, want %s", next.Status, rooms.StatusOccupied)
	}

	var sawEdit bool
	for _, record := range f.outbox.Records() {
		if record.Name == "reservation.stay_edited" {
			sawEdit = true
		}
	}
	if !sawEdit {
		t.Error("expected a reservation.stay_edited outbox record")
	}
}

func TestEditStayRejectsOccupiedTarget(t *testing.T) {
	f := newFixture(t)

	res := f.checkIn(t, f.room102, "Unipersonal", ts("2024-01-15T12:00"))
	f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-15T12:00"))

	_, _, err := f.service.EditStay(context.Background(), EditStayParams{
		ReservationID: res.ID,
		RoomID:        f.room101.ID,
		RateType:      "Matrimonial",
		CheckOut:      ts("2024-01-15T12:00"),
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
}

func TestEditStayRejectsCheckOutBeforeSegmentBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room102, "Unipersonal", ts("2024-01-15T12:00"))
	*f.clock = ts("2024-01-12T10:00")
	if _, _, err := f.service.EditStay(ctx, EditStayParams{
		ReservationID: res.ID,
		RoomID:        f.room101.ID,
		RateType:      "Matrimonial",
		CheckOut:      ts("2024-01-16T12:00"),
	}); err != nil {
		t.Fatalf("EditStay: %v", err)
	}

	_, _, err := f.service.EditStay(ctx, EditStayParams{
		ReservationID: res.ID,
		RoomID:        f.room101.ID,
		RateType:      "Matrimonial",
		CheckOut:      ts("2024-01-11T12:00"),
	})
	if !errors.Is(err, reservation.ErrCheckOutTooEarly) {
		t.Fatalf("err = %v, want ErrCheckOutTooEarly", err)
	}
}

func TestEditStayKeepsOmittedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-14T12:00"))
	*f.clock = ts("2024-01-12T10:00")

	updated, outcome, err := f.service.EditStay(ctx, EditStayParams{
		ReservationID: res.ID,
		CheckOut:      ts("2024-01-16T12:00"),
	})
	if err != nil {
		t.Fatalf("EditStay: %v", err)
	}
	if outcome.RoomChanged {
		t.Error("RoomChanged = true for a checkout-only edit")
	}
	if updated.RoomID != f.room101.ID || updated.RateType != "Matrimonial" {
		t.Errorf("room/rate = %s/%s, want current values kept", updated.RoomID, updated.RateType)
	}
	if got, want := updated.TotalDue.Amount, int64(6*500); got != want {
		t.Errorf("TotalDue = %d, want %d", got, want)
	}
	if len(updated.Segments) != 0 {
		t.Errorf("Segments = %d, want 0", len(updated.Segments))
	}
	room, _ := f.service.Rooms.ByID(ctx, f.room101.ID)
	if room.Status != rooms.StatusOccupied {
		t.Errorf("room status = %s, want %s", room.Status, rooms.StatusOccupied)
	}
}

type flakyRoomRepo struct {
	rooms.Repository
	failSave bool
}

var errRoomSave = errors.New("rooms: save failed")

func (r *flakyRoomRepo) Save(ctx context.Context, room *rooms.Room) error {
	if r.failSave {
		return errRoomSave
	}
	return r.Repository.Save(ctx, room)
}

func TestEditStayPersistsLedgerWhenRoomSaveFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room102, "Unipersonal", ts("2024-01-15T12:00"))
	*f.clock = ts("2024-01-12T10:00")
	f.service.Rooms = &flakyRoomRepo{Repository: f.service.Rooms, failSave: true}

	_, _, err := f.service.EditStay(ctx, EditStayParams{
		ReservationID: res.ID,
		RoomID:        f.room101.ID,
		RateType:      "Matrimonial",
		CheckOut:      ts("2024-01-16T12:00"),
	})
	if !errors.Is(err, errRoomSave) {
		t.Fatalf("err = %v, want errRoomSave", err)
	}

	// The ledger write precedes the room writes, so the edit sticks
	// even though the statuses went stale.
	stored, err := f.service.Reservations.ByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("Reservations.ByID: %v", err)
	}
	if stored.RoomID != f.room101.ID {
		t.Errorf("RoomID = %s, want %s", stored.RoomID, f.room101.ID)
	}
	if got, want := stored.TotalDue.Amount, int64(2*400+4*500); got != want {
		t.Errorf("TotalDue = %d, want %d", got, want)
	}
}

func TestCancelReleasesRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-14T12:00"))

	cancelled, err := f.service.Cancel(ctx, res.ID, "walk-out")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.State != reservation.StateCancelled {
		t.Errorf("State = %s, want %s", cancelled.State, reservation.StateCancelled)
	}
	room, _ := f.service.Rooms.ByID(ctx, f.room101.ID)
	if room.Status != rooms.StatusCleaning {
		t.Errorf("room status = %s, want %s", room.Status, rooms.StatusCleaning)
	}
	if _, err := f.service.Reservations.ActiveByRoom(ctx, f.room101.ID); !errors.Is(err, reservation.ErrNotFound) {
		t.Errorf("ActiveByRoom = %v, want ErrNotFound", err)
	}
	var sawCancel bool
	for _, record := range f.outbox.Records() {
		if record.Name == "reservation.cancelled" {
			sawCancel = true
		}
	}
	if !sawCancel {
		t.Error("expected a reservation.cancelled outbox record")
	}

	if _, err := f.service.Cancel(ctx, res.ID, ""); !errors.Is(err, reservation.ErrInvalidState) {
		t.Errorf("second Cancel = %v, want ErrInvalidState", err)
	}
}

func TestSetNightlyRateBootstrapsPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// A fresh database has no rate-plan document yet.
	f.service.RatePlans = memory.NewRatePlanRepository(nil)

	plan, err := f.service.SetNightlyRate(ctx, "Doble", 600)
	if err != nil {
		t.Fatalf("SetNightlyRate: %v", err)
	}
	if plan.Currency != "PEN" {
		t.Errorf("Currency = %q, want PEN", plan.Currency)
	}
	nightly, ok := plan.NightlyRate("Doble")
	if !ok || nightly.Amount != 600 {
		t.Errorf("NightlyRate(Doble) = %+v %v", nightly, ok)
	}

	loaded, err := f.service.RatePlan(ctx)
	if err != nil {
		t.Fatalf("RatePlan after bootstrap: %v", err)
	}
	if _, ok := loaded.NightlyRate("Doble"); !ok {
		t.Error("bootstrapped plan not persisted")
	}
}

func TestAddExtrasAndCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-12T12:00"))
	base := res.TotalDue.Amount

	updated, err := f.service.AddExtras(ctx, res.ID, []ExtraItem{
		{Name: "Gaseosa", UnitPrice: 60, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("AddExtras: %v", err)
	}
	if got, want := updated.TotalDue.Amount, base+120; got != want {
		t.Errorf("TotalDue = %d, want %d", got, want)
	}

	closed, err := f.service.CheckOut(ctx, res.ID)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if closed.State != reservation.StateCheckedOut {
		t.Errorf("State = %s, want %s", closed.State, reservation.StateCheckedOut)
	}
	if closed.TotalDue.Amount != base+120 {
		t.Errorf("checkout changed the total: %d", closed.TotalDue.Amount)
	}
	room, _ := f.service.Rooms.ByID(ctx, f.room101.ID)
	if room.Status != rooms.StatusCleaning {
		t.Errorf("room status = %s, want %s", room.Status, rooms.StatusCleaning)
	}
}

func TestRoomBoardPairsActiveStays(t *testing.T) {
	f := newFixture(t)

	res := f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-12T12:00"))

	board, err := f.service.RoomBoard(context.Background())
	if err != nil {
		t.Fatalf("RoomBoard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("board entries = %d, want 2", len(board))
	}
	for _, entry := range board {
		switch entry.Room.ID {
		case f.room101.ID:
			if entry.Reservation == nil || entry.Reservation.ID != res.ID {
				t.Errorf("room 101 entry missing its reservation")
			}
		case f.room102.ID:
			if entry.Reservation != nil {
				t.Errorf("room 102 should be vacant")
			}
		}
	}
}

func TestSetRoomStatusGuardsActiveStay(t *testing.T) {
	f := newFixture(t)

	f.checkIn(t, f.room101, "Matrimonial", ts("2024-01-12T12:00"))

	_, err := f.service.SetRoomStatus(context.Background(), f.room101.ID, rooms.StatusAvailable)
	if !errors.Is(err, ErrRoomOccupied) {
		t.Fatalf("err = %v, want ErrRoomOccupied", err)
	}
}

func TestRegisterCustomerReusesDocument(t *testing.T) {
	f := newFixture(t)

	again, err := f.service.RegisterCustomer(context.Background(), RegisterCustomerParams{
		FullName:   "Maria Quispe",
		DocumentID: "45871236",
		Phone:      "+51 999 333 444",
	})
	if err != nil {
		t.Fatalf("RegisterCustomer: %v", err)
	}
	if again.ID != f.guest.ID {
		t.Errorf("expected the existing profile, got %s", again.ID)
	}
	if again.Phone != "+51 999 333 444" {
		t.Errorf("Phone = %q, contact not refreshed", again.Phone)
	}
}

func TestRecordExpenseUsesPlanCurrency(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordExpense(context.Background(), RecordExpenseParams{
		Category:    "SUPPLIES",
		Description: "toallas",
		Amount:      250,
	})
	if err != nil {
		t.Fatalf("RecordExpense: %v", err)
	}
	if entry.Amount.Currency != "PEN" || entry.Amount.Amount != 250 {
		t.Errorf("Amount = %+v", entry.Amount)
	}
}
