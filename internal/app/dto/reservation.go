package dto

import (
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/reservation"
)

type StaySegment struct {
	RoomID   string    `json:"room_id"`
	RateType string    `json:"rate_type"`
	MovedAt  time.Time `json:"moved_at"`
}

type StayExtra struct {
	Name      string   `json:"name"`
	UnitPrice MoneyDTO `json:"unit_price"`
	Quantity  int64    `json:"quantity"`
}

type ReservationView struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	RoomID     string        `json:"room_id"`
	RateType   string        `json:"rate_type"`
	Adults     int           `json:"adults"`
	Children   int           `json:"children"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	Segments   []StaySegment `json:"segments"`
	Extras     []StayExtra   `json:"extras"`
	TotalDue   MoneyDTO      `json:"total_due"`
	State      string        `json:"state"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CostBreakdown echoes how a recalculated total decomposes so the desk
// can show the guest what changed.
type CostBreakdown struct {
	Total        MoneyDTO `json:"total"`
	Historical   MoneyDTO `json:"historical"`
	Room         MoneyDTO `json:"room"`
	Extras       MoneyDTO `json:"extras"`
	RoomChanged  bool     `json:"room_changed"`
	MissingRates []string `json:"missing_rates,omitempty"`
}

type ReservationWithBreakdown struct {
	Reservation ReservationView `json:"reservation"`
	Breakdown   CostBreakdown   `json:"breakdown"`
}

type ReservationCollection struct {
	Items []ReservationView `json:"items"`
}

func MapReservation(res *reservation.Reservation) ReservationView {
	if res == nil {
		return ReservationView{}
	}
	view := ReservationView{
		ID:         string(res.ID),
		CustomerID: res.CustomerID,
		RoomID:     string(res.RoomID),
		RateType:   string(res.RateType),
		Adults:     res.Adults,
		Children:   res.Children,
		CheckIn:    res.CheckIn,
		CheckOut:   res.CheckOut,
		Segments:   make([]StaySegment, 0, len(res.Segments)),
		Extras:     make([]StayExtra, 0, len(res.Extras)),
		TotalDue:   MapMoney(res.TotalDue),
		State:      string(res.State),
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	}
	for _, seg := range res.Segments {
		view.Segments = append(view.Segments, StaySegment{
			RoomID:   string(seg.RoomID),
			RateType: string(seg.RateType),
			MovedAt:  seg.MovedAt,
		})
	}
	for _, extra := range res.Extras {
		view.Extras = append(view.Extras, StayExtra{
			Name:      extra.Name,
			UnitPrice: MapMoney(extra.UnitPrice),
			Quantity:  extra.Quantity,
		})
	}
	return view
}

func MapBreakdown(result billing.Result) CostBreakdown {
	breakdown := CostBreakdown{
		Total:       MapMoney(result.Total),
		Historical:  MapMoney(result.Historical),
		Room:        MapMoney(result.Room),
		Extras:      MapMoney(result.Extras),
		RoomChanged: result.RoomChanged,
	}
	for _, rt := range result.MissingRates {
		breakdown.MissingRates = append(breakdown.MissingRates, string(rt))
	}
	return breakdown
}
