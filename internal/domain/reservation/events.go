package reservation

import (
	"time"

	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

type CheckedIn struct {
	ReservationID ReservationID
	CustomerID    string
	RoomID        rooms.RoomID
	Total         money.Money
	At            time.Time
}

func (e CheckedIn) EventName() string     { return "reservation.checked_in" }
func (e CheckedIn) AggregateID() string   { return string(e.ReservationID) }
func (e CheckedIn) OccurredAt() time.Time { return e.At }

type StayEdited struct {
	ReservationID ReservationID
	FromRoomID    rooms.RoomID
	ToRoomID      rooms.RoomID
	RateType      rooms.RateType
	CheckOut      time.Time
	Total         money.Money
	RoomChanged   bool
	At            time.Time
}

func (e StayEdited) EventName() string     { return "reservation.stay_edited" }
func (e StayEdited) AggregateID() string   { return string(e.ReservationID) }
func (e StayEdited) OccurredAt() time.Time { return e.At }

type ExtrasAdded struct {
	ReservationID ReservationID
	Count         int
	Added         money.Money
	At            time.Time
}

func (e ExtrasAdded) EventName() string     { return "reservation.extras_added" }
func (e ExtrasAdded) AggregateID() string   { return string(e.ReservationID) }
func (e ExtrasAdded) OccurredAt() time.Time { return e.At }

type CheckedOut struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	Total         money.Money
	At            time.Time
}

func (e CheckedOut) EventName() string     { return "reservation.checked_out" }
func (e CheckedOut) AggregateID() string   { return string(e.ReservationID) }
func (e CheckedOut) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	ReservationID ReservationID
	Reason        string
	At            time.Time
}

func (e Cancelled) EventName() string     { return "reservation.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.ReservationID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }

// RateLookupMissed flags stays priced against a rate type the plan had
// no entry for. The charge degrades to zero; this event is the
// out-of-band signal that the plan needs fixing.
type RateLookupMissed struct {
	ReservationID ReservationID
	RateTypes     []string
	At            time.Time
}

func (e RateLookupMissed) EventName() string     { return "billing.rate_lookup_missed" }
func (e RateLookupMissed) AggregateID() string   { return string(e.ReservationID) }
func (e RateLookupMissed) OccurredAt() time.Time { return e.At }
