package dto

import (
	"time"

	"frontdesk/internal/app/services/frontdesk"
	"frontdesk/internal/domain/rooms"
)

type RoomView struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Floor     int       `json:"floor"`
	RateType  string    `json:"rate_type"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoomCollection struct {
	Items []RoomView `json:"items"`
}

// BoardEntryView is one tile on the desk's status board.
type BoardEntryView struct {
	Room        RoomView         `json:"room"`
	Reservation *ReservationView `json:"reservation,omitempty"`
}

type BoardView struct {
	Items []BoardEntryView `json:"items"`
}

type RatePlanView struct {
	Currency  string              `json:"currency"`
	Nightly   map[string]MoneyDTO `json:"nightly"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func MapRoom(room *rooms.Room) RoomView {
	if room == nil {
		return RoomView{}
	}
	return RoomView{
		ID:        string(room.ID),
		Number:    room.Number,
		Floor:     room.Floor,
		RateType:  string(room.RateType),
		Status:    string(room.Status),
		Notes:     room.Notes,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func MapBoard(entries []frontdesk.BoardEntry) BoardView {
	board := BoardView{Items: make([]BoardEntryView, 0, len(entries))}
	for _, entry := range entries {
		tile := BoardEntryView{Room: MapRoom(entry.Room)}
		if entry.Reservation != nil {
			view := MapReservation(entry.Reservation)
			tile.Reservation = &view
		}
		board.Items = append(board.Items, tile)
	}
	return board
}

func MapRatePlan(plan *rooms.RatePlan) RatePlanView {
	if plan == nil {
		return RatePlanView{}
	}
	view := RatePlanView{
		Currency:  plan.Currency,
		Nightly:   make(map[string]MoneyDTO, len(plan.Nightly)),
		UpdatedAt: plan.UpdatedAt,
	}
	for rt, price := range plan.Nightly {
		view.Nightly[string(rt)] = MapMoney(price)
	}
	return view
}
