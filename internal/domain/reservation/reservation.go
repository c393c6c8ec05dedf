package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/events"
	"frontdesk/internal/domain/shared/money"
)

var (
	ErrIDRequired       = errors.New("reservation: id is required")
	ErrCustomerRequired = errors.New("reservation: customer is required")
	ErrRoomRequired     = errors.New("reservation: room is required")
	ErrInvalidGuests    = errors.New("reservation: guest count must be positive")
	ErrInvalidState     = errors.New("reservation: invalid state transition")
	ErrCheckOutTooEarly = errors.New("reservation: checkout must be after check-in and the last room change")
	ErrInvalidExtra     = errors.New("reservation: extra needs a name, a non-negative price and a positive quantity")
	ErrExtraCurrency    = errors.New("reservation: extra must be priced in the stay currency")
	ErrNotFound         = errors.New("reservation: not found")
)

type ReservationID string

type State string

const (
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
	StateCancelled  State = "CANCELLED"
)

// Reservation is an in-progress or finished stay. Segments is the
// append-only record of past room occupancies; the room/rate in effect
// since the last boundary lives in RoomID/RateType.
type Reservation struct {
	ID         ReservationID
	CustomerID string
	RoomID     rooms.RoomID
	RateType   rooms.RateType
	Adults     int
	Children   int
	CheckIn    time.Time
	CheckOut   time.Time
	Segments   []billing.Segment
	Extras     []billing.Extra
	TotalDue   money.Money
	State      State
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	ActiveByRoom(ctx context.Context, roomID rooms.RoomID) (*Reservation, error)
	ListActive(ctx context.Context) ([]*Reservation, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Reservation, error)
	ListCheckedOutBetween(ctx context.Context, from, to time.Time) ([]*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
}

type CreateParams struct {
	ID         ReservationID
	CustomerID string
	RoomID     rooms.RoomID
	RateType   rooms.RateType
	Adults     int
	Children   int
	CheckIn    time.Time
	CheckOut   time.Time
	Total      money.Money
	Now        time.Time
}

func NewReservation(params CreateParams) (*Reservation, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.CustomerID) == "" {
		return nil, ErrCustomerRequired
	}
	if strings.TrimSpace(string(params.RoomID)) == "" {
		return nil, ErrRoomRequired
	}
	if params.Adults <= 0 {
		return nil, ErrInvalidGuests
	}
	if !params.CheckOut.After(params.CheckIn) {
		return nil, ErrCheckOutTooEarly
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	r := &Reservation{
		ID:         params.ID,
		CustomerID: params.CustomerID,
		RoomID:     params.RoomID,
		RateType:   params.RateType,
		Adults:     params.Adults,
		Children:   params.Children,
		CheckIn:    params.CheckIn.UTC(),
		CheckOut:   params.CheckOut.UTC(),
		TotalDue:   params.Total,
		State:      StateCheckedIn,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.Record(CheckedIn{ReservationID: r.ID, CustomerID: r.CustomerID, RoomID: r.RoomID, Total: r.TotalDue, At: now})
	return r, nil
}

// Ledger projects the reservation into the billing engine's input view.
func (r *Reservation) Ledger() billing.Ledger {
	return billing.Ledger{
		CheckIn:         r.CheckIn,
		Segments:        append([]billing.Segment(nil), r.Segments...),
		CurrentRoomID:   r.RoomID,
		CurrentRateType: r.RateType,
		Extras:          append([]billing.Extra(nil), r.Extras...),
	}
}

// ValidateEdit enforces the recalculation precondition: the proposed
// checkout must fall after check-in and after the last frozen segment.
func (r *Reservation) ValidateEdit(checkOut time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	if !checkOut.After(r.CheckIn) {
		return ErrCheckOutTooEarly
	}
	if n := len(r.Segments); n > 0 && !checkOut.After(r.Segments[n-1].MovedAt) {
		return ErrCheckOutTooEarly
	}
	return nil
}

// ApplyStayEdit persists a recalculation outcome onto the aggregate. On a
// room change the vacated slice is frozen into Segments, which is what
// locks its cost for every future recalculation.
func (r *Reservation) ApplyStayEdit(res billing.Result, now time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	previousRoom := r.RoomID
	if res.AppendedSegment != nil {
		r.Segments = append(r.Segments, *res.AppendedSegment)
	}
	r.RoomID = res.RoomID
	r.RateType = res.RateType
	r.CheckOut = res.CheckOut
	r.TotalDue = res.Total
	r.UpdatedAt = now.UTC()
	r.Record(StayEdited{
		ReservationID: r.ID,
		FromRoomID:    previousRoom,
		ToRoomID:      r.RoomID,
		RateType:      r.RateType,
		CheckOut:      r.CheckOut,
		Total:         r.TotalDue,
		RoomChanged:   res.RoomChanged,
		At:            r.UpdatedAt,
	})
	if len(res.MissingRates) > 0 {
		missing := make([]string, 0, len(res.MissingRates))
		for _, rt := range res.MissingRates {
			missing = append(missing, string(rt))
		}
		r.Record(RateLookupMissed{ReservationID: r.ID, RateTypes: missing, At: r.UpdatedAt})
	}
	return nil
}

// AddExtras appends purchases and bumps the amount due by their cost.
func (r *Reservation) AddExtras(items []billing.Extra, now time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	var added int64
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return ErrInvalidExtra
		}
		if item.UnitPrice.Currency != r.TotalDue.Currency {
			return ErrExtraCurrency
		}
		added += item.UnitPrice.Amount * item.Quantity
	}
	r.Extras = append(r.Extras, items...)
	r.TotalDue = money.Money{Amount: r.TotalDue.Amount + added, Currency: r.TotalDue.Currency}
	r.UpdatedAt = now.UTC()
	r.Record(ExtrasAdded{ReservationID: r.ID, Count: len(items), Added: money.Money{Amount: added, Currency: r.TotalDue.Currency}, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) CompleteCheckOut(now time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	r.State = StateCheckedOut
	r.UpdatedAt = now.UTC()
	r.Record(CheckedOut{ReservationID: r.ID, RoomID: r.RoomID, Total: r.TotalDue, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	r.State = StateCancelled
	r.UpdatedAt = now.UTC()
	r.Record(Cancelled{ReservationID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Nights is the whole stay length in calendar nights.
func (r *Reservation) Nights() int {
	return billing.Nights(r.CheckIn, r.CheckOut)
}

// SegmentNights sums nights across frozen segments plus the open one.
// It must equal Nights() after every recalculation.
func (r *Reservation) SegmentNights() int {
	total := 0
	boundary := r.CheckIn
	for _, seg := range r.Segments {
		total += billing.Nights(boundary, seg.MovedAt)
		boundary = seg.MovedAt
	}
	return total + billing.Nights(boundary, r.CheckOut)
}
