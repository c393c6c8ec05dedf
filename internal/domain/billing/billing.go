// Package billing computes the amount due for a stay when its room, rate
// type or checkout date is edited mid-stay. It is a pure calculation: the
// caller supplies the ledger, the rate table and the clock, and persists
// the outcome.
package billing

import (
	"time"

	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

// Segment is a closed slice of the stay during which room and rate type
// were fixed. MovedAt marks the end of the slice.
type Segment struct {
	RoomID   rooms.RoomID
	RateType rooms.RateType
	MovedAt  time.Time
}

// Extra is an itemized incidental purchase billed alongside room cost.
type Extra struct {
	Name      string
	UnitPrice money.Money
	Quantity  int64
}

// Ledger is the billing view of a reservation as currently persisted.
type Ledger struct {
	CheckIn         time.Time
	Segments        []Segment
	CurrentRoomID   rooms.RoomID
	CurrentRateType rooms.RateType
	Extras          []Extra
}

// Edit carries the proposed room, rate type and checkout date.
type Edit struct {
	RoomID   rooms.RoomID
	RateType rooms.RateType
	CheckOut time.Time
}

// RateTable maps rate types to nightly prices in a single currency.
type RateTable struct {
	Currency string
	Nightly  map[rooms.RateType]money.Money
}

// Result decomposes the recalculated total. Total always equals
// Historical + Room + Extras exactly. On a room change AppendedSegment
// holds the slice the caller must freeze into the reservation's history.
type Result struct {
	Total      money.Money
	Historical money.Money
	Room       money.Money
	Extras     money.Money

	RoomChanged     bool
	AppendedSegment *Segment
	RoomID          rooms.RoomID
	RateType        rooms.RateType
	CheckOut        time.Time

	// MissingRates lists rate types the table had no entry for; those
	// legs were priced at zero. A misconfigured table degrades to an
	// under-charge rather than blocking the front desk.
	MissingRates []rooms.RateType
}

// Recalculate walks the segment history, prices the current or future
// occupancy depending on whether the edit moves the guest to another
// room, and adds the extras total.
//
// The caller must validate the edit first: Recalculate assumes
// edit.CheckOut is after ledger.CheckIn and after the last segment
// boundary. "now" is the moment of the edit and is never read from a
// global clock.
func Recalculate(ledger Ledger, edit Edit, rates RateTable, now time.Time) Result {
	res := Result{
		RoomID:   edit.RoomID,
		RateType: edit.RateType,
		CheckOut: edit.CheckOut.UTC(),
	}

	lookup := func(rt rooms.RateType) int64 {
		if m, ok := rates.Nightly[rt]; ok {
			return m.Amount
		}
		for _, seen := range res.MissingRates {
			if seen == rt {
				return 0
			}
		}
		res.MissingRates = append(res.MissingRates, rt)
		return 0
	}

	var historical int64
	boundary := ledger.CheckIn
	for _, seg := range ledger.Segments {
		if n := Nights(boundary, seg.MovedAt); n > 0 {
			historical += int64(n) * lookup(seg.RateType)
		}
		boundary = seg.MovedAt
	}

	var room int64
	if edit.RoomID != ledger.CurrentRoomID {
		res.RoomChanged = true
		// The guest owes the vacated room up to this moment, and the
		// new room from this moment to checkout.
		if n := Nights(boundary, now); n > 0 {
			room += int64(n) * lookup(ledger.CurrentRateType)
		}
		newNights := Nights(now, edit.CheckOut)
		if newNights <= 0 {
			newNights = 1
		}
		room += int64(newNights) * lookup(edit.RateType)
		res.AppendedSegment = &Segment{
			RoomID:   ledger.CurrentRoomID,
			RateType: ledger.CurrentRateType,
			MovedAt:  now.UTC(),
		}
	} else {
		n := Nights(boundary, edit.CheckOut)
		if n <= 0 {
			n = 1
		}
		room = int64(n) * lookup(edit.RateType)
	}

	var extras int64
	for _, e := range ledger.Extras {
		extras += e.UnitPrice.Amount * e.Quantity
	}

	currency := rates.Currency
	res.Historical = money.Money{Amount: historical, Currency: currency}
	res.Room = money.Money{Amount: room, Currency: currency}
	res.Extras = money.Money{Amount: extras, Currency: currency}
	res.Total = money.Money{Amount: historical + room + extras, Currency: currency}
	return res
}

// Nights counts whole calendar days between two instants in UTC. The
// time of day is ignored: a guest keeps the nightly rate for the night
// regardless of when on the day the boundary falls.
func Nights(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExtrasTotal sums unit price times quantity over the extras list. The
// recalculation never rewrites extras; they are summed as recorded.
func ExtrasTotal(extras []Extra, currency string) money.Money {
	var total int64
	for _, e := range extras {
		total += e.UnitPrice.Amount * e.Quantity
	}
	return money.Money{Amount: total, Currency: currency}
}
