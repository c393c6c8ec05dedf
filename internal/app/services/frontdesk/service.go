// Package frontdesk orchestrates the desk operations: check-in, stay
// edits, extras, checkout and the room status board. It owns the
// persistence choreography around the billing engine; the engine itself
// stays pure.
package frontdesk

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appoutbox "frontdesk/internal/app/outbox"
	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

var (
	ErrRoomUnavailable = errors.New("frontdesk: room is not available")
	ErrRoomOccupied    = errors.New("frontdesk: room already has an active reservation")
)

type Service struct {
	Reservations reservation.Repository
	Rooms        rooms.Repository
	RatePlans    rooms.RatePlanRepository
	Customers    customer.Repository
	Expenses     expense.Repository
	Outbox       appoutbox.Outbox
	Encoder      appoutbox.EventEncoder
	Logger       *slog.Logger

	// Currency prices the rate plan; the first SetNightlyRate against an
	// empty database creates the plan document in this currency.
	Currency string

	// Clock supplies "now" so recalculations stay reproducible in tests.
	Clock func() time.Time
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

type CheckInParams struct {
	CustomerID string
	RoomID     rooms.RoomID
	RateType   rooms.RateType
	Adults     int
	Children   int
	CheckOut   time.Time
}

// CheckIn opens a stay: the room goes occupied and the initial amount
// due is priced by the billing engine over an empty segment history.
func (s *Service) CheckIn(ctx context.Context, params CheckInParams) (*reservation.Reservation, error) {
	now := s.now()

	if _, err := s.Customers.ByID(ctx, customer.ID(params.CustomerID)); err != nil {
		return nil, err
	}
	room, err := s.Rooms.ByID(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != rooms.StatusAvailable {
		return nil, ErrRoomUnavailable
	}
	plan, err := s.RatePlans.Load(ctx)
	if err != nil {
		return nil, err
	}

	rateType := params.RateType
	if rateType == "" {
		rateType = room.RateType
	}

	quote := billing.Recalculate(
		billing.Ledger{CheckIn: now, CurrentRoomID: room.ID, CurrentRateType: rateType},
		billing.Edit{RoomID: room.ID, RateType: rateType, CheckOut: params.CheckOut},
		s.rateTable(plan),
		now,
	)
	s.reportMissingRates(quote.MissingRates)

	res, err := reservation.NewReservation(reservation.CreateParams{
		ID:         reservation.ReservationID(uuid.NewString()),
		CustomerID: params.CustomerID,
		RoomID:     room.ID,
		RateType:   rateType,
		Adults:     params.Adults,
		Children:   params.Children,
		CheckIn:    now,
		CheckOut:   params.CheckOut,
		Total:      quote.Total,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}

	if err := room.ChangeStatus(rooms.StatusOccupied, now); err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, res)
	if s.Logger != nil {
		s.Logger.Info("guest checked in", "reservation_id", res.ID, "room", room.Number, "total", res.TotalDue)
	}
	return res, nil
}

type EditStayParams struct {
	ReservationID reservation.ReservationID
	RoomID        rooms.RoomID
	RateType      rooms.RateType
	CheckOut      time.Time
}

// EditStay recalculates the amount due for a room, rate or checkout
// change and persists the outcome: on a room move the vacated slice is
// frozen into the segment history, the old room goes to cleaning and the
// new one becomes occupied.
func (s *Service) EditStay(ctx context.Context, params EditStayParams) (*reservation.Reservation, billing.Result, error) {
	now := s.now()

	res, err := s.Reservations.ByID(ctx, params.ReservationID)
	if err != nil {
		return nil, billing.Result{}, err
	}
	// Fields omitted from the edit keep their current values.
	if params.RoomID == "" {
		params.RoomID = res.RoomID
	}
	if params.RateType == "" {
		params.RateType = res.RateType
	}
	if params.CheckOut.IsZero() {
		params.CheckOut = res.CheckOut
	}
	if err := res.ValidateEdit(params.CheckOut); err != nil {
		return nil, billing.Result{}, err
	}
	plan, err := s.RatePlans.Load(ctx)
	if err != nil {
		return nil, billing.Result{}, err
	}

	moving := params.RoomID != res.RoomID
	var nextRoom *rooms.Room
	if moving {
		nextRoom, err = s.Rooms.ByID(ctx, params.RoomID)
		if err != nil {
			return nil, billing.Result{}, err
		}
		if nextRoom.Status != rooms.StatusAvailable {
			return nil, billing.Result{}, ErrRoomUnavailable
		}
	}

	previousRoomID := res.RoomID
	outcome := billing.Recalculate(
		res.Ledger(),
		billing.Edit{RoomID: params.RoomID, RateType: params.RateType, CheckOut: params.CheckOut},
		s.rateTable(plan),
		now,
	)
	s.reportMissingRates(outcome.MissingRates)

	if err := res.ApplyStayEdit(outcome, now); err != nil {
		return nil, billing.Result{}, err
	}

	var vacated *rooms.Room
	if moving {
		vacated, err = s.Rooms.ByID(ctx, previousRoomID)
		if err != nil {
			return nil, billing.Result{}, err
		}
		if err := vacated.ChangeStatus(rooms.StatusCleaning, now); err != nil {
			return nil, billing.Result{}, err
		}
		if err := nextRoom.ChangeStatus(rooms.StatusOccupied, now); err != nil {
			return nil, billing.Result{}, err
		}
	}

	// The reservation carries the ledger; it persists before the room
	// statuses so a failed room write leaves only a stale status.
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, billing.Result{}, err
	}
	if moving {
		if err := s.Rooms.Save(ctx, vacated); err != nil {
			return nil, billing.Result{}, err
		}
		if err := s.Rooms.Save(ctx, nextRoom); err != nil {
			return nil, billing.Result{}, err
		}
	}
	s.drainEvents(ctx, res)
	if s.Logger != nil {
		s.Logger.Info("stay edited", "reservation_id", res.ID, "room_changed", outcome.RoomChanged, "total", res.TotalDue)
	}
	return res, outcome, nil
}

type ExtraItem struct {
	Name      string
	UnitPrice int64
	Quantity  int64
}

// AddExtras records incidental purchases against an active stay.
func (s *Service) AddExtras(ctx context.Context, id reservation.ReservationID, items []ExtraItem) (*reservation.Reservation, error) {
	now := s.now()

	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err := s.RatePlans.Load(ctx)
	if err != nil {
		return nil, err
	}
	extras := make([]billing.Extra, 0, len(items))
	for _, item := range items {
		extras = append(extras, billing.Extra{
			Name:      item.Name,
			UnitPrice: money.Money{Amount: item.UnitPrice, Currency: plan.Currency},
			Quantity:  item.Quantity,
		})
	}
	if err := res.AddExtras(extras, now); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, res)
	return res, nil
}

// Cancel voids an in-progress stay that will not complete (walk-out,
// no-show discovered late) and sends the room to housekeeping.
func (s *Service) Cancel(ctx context.Context, id reservation.ReservationID, reason string) (*reservation.Reservation, error) {
	now := s.now()

	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.Cancel(reason, now); err != nil {
		return nil, err
	}
	room, err := s.Rooms.ByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if err := room.ChangeStatus(rooms.StatusCleaning, now); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, res)
	if s.Logger != nil {
		s.Logger.Info("stay cancelled", "reservation_id", res.ID, "room", room.Number, "reason", reason)
	}
	return res, nil
}

// CheckOut closes the stay and sends the room to housekeeping.
func (s *Service) CheckOut(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	now := s.now()

	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.CompleteCheckOut(now); err != nil {
		return nil, err
	}
	room, err := s.Rooms.ByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if err := room.ChangeStatus(rooms.StatusCleaning, now); err != nil {
		return nil, err
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, res)
	if s.Logger != nil {
		s.Logger.Info("guest checked out", "reservation_id", res.ID, "room", room.Number, "total", res.TotalDue)
	}
	return res, nil
}

// BoardEntry pairs a room with its active reservation, if any.
type BoardEntry struct {
	Room        *rooms.Room
	Reservation *reservation.Reservation
}

// RoomBoard builds the status board shown at the desk.
func (s *Service) RoomBoard(ctx context.Context) ([]BoardEntry, error) {
	all, err := s.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.Reservations.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[rooms.RoomID]*reservation.Reservation, len(active))
	for _, res := range active {
		byRoom[res.RoomID] = res
	}
	board := make([]BoardEntry, 0, len(all))
	for _, room := range all {
		board = append(board, BoardEntry{Room: room, Reservation: byRoom[room.ID]})
	}
	return board, nil
}

type RegisterCustomerParams struct {
	FullName   string
	DocumentID string
	Phone      string
	Notes      string
}

// RegisterCustomer creates a guest profile, reusing an existing one when
// the document id is already on file.
func (s *Service) RegisterCustomer(ctx context.Context, params RegisterCustomerParams) (*customer.Customer, error) {
	now := s.now()
	if existing, err := s.Customers.ByDocument(ctx, params.DocumentID); err == nil {
		existing.UpdateContact(params.Phone, params.Notes, now)
		if err := s.Customers.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, customer.ErrNotFound) {
		return nil, err
	}
	guest, err := customer.NewCustomer(customer.CreateParams{
		ID:         customer.ID(uuid.NewString()),
		FullName:   params.FullName,
		DocumentID: params.DocumentID,
		Phone:      params.Phone,
		Notes:      params.Notes,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Customers.Save(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// CustomerHistory returns a guest profile and their past stays.
func (s *Service) CustomerHistory(ctx context.Context, id customer.ID) (*customer.Customer, []*reservation.Reservation, error) {
	guest, err := s.Customers.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stays, err := s.Reservations.ListByCustomer(ctx, string(id))
	if err != nil {
		return nil, nil, err
	}
	return guest, stays, nil
}

func (s *Service) rateTable(plan *rooms.RatePlan) billing.RateTable {
	return billing.RateTable{Currency: plan.Currency, Nightly: plan.Rates()}
}

func (s *Service) reportMissingRates(missing []rooms.RateType) {
	if len(missing) == 0 || s.Logger == nil {
		return
	}
	s.Logger.Warn("rate plan has no price for referenced rate types", "rate_types", missing)
}

func (s *Service) drainEvents(ctx context.Context, res *reservation.Reservation) {
	pending := res.PendingEvents()
	res.ClearEvents()
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, pending); err != nil && s.Logger != nil {
		s.Logger.Error("outbox write failed", "reservation_id", res.ID, "error", err)
	}
}
