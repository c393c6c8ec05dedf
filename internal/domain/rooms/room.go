package rooms

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired        = errors.New("rooms: id is required")
	ErrNumberRequired    = errors.New("rooms: room number is required")
	ErrRateTypeRequired  = errors.New("rooms: rate type is required")
	ErrInvalidStatus     = errors.New("rooms: invalid status")
	ErrInvalidTransition = errors.New("rooms: invalid status transition")
	ErrRoomNotFound      = errors.New("rooms: not found")
	ErrNumberTaken       = errors.New("rooms: room number already in use")
)

type RoomID string

// RateType is a named pricing tier (e.g. "Unipersonal", "Matrimonial").
type RateType string

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusCleaning    Status = "CLEANING"
	StatusMaintenance Status = "MAINTENANCE"
)

// allowedTransitions encodes the front-desk board lifecycle: a room is
// occupied at check-in, goes to cleaning at checkout and back to available
// once housekeeping is done. Maintenance can interrupt any idle state.
var allowedTransitions = map[Status][]Status{
	StatusAvailable:   {StatusOccupied, StatusMaintenance},
	StatusOccupied:    {StatusCleaning, StatusAvailable},
	StatusCleaning:    {StatusAvailable, StatusMaintenance},
	StatusMaintenance: {StatusAvailable},
}

type Room struct {
	ID        RoomID
	Number    string
	Floor     int
	RateType  RateType
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	ByNumber(ctx context.Context, number string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}

type CreateParams struct {
	ID       RoomID
	Number   string
	Floor    int
	RateType RateType
	Notes    string
	Now      time.Time
}

func NewRoom(params CreateParams) (*Room, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	number := strings.TrimSpace(params.Number)
	if number == "" {
		return nil, ErrNumberRequired
	}
	if strings.TrimSpace(string(params.RateType)) == "" {
		return nil, ErrRateTypeRequired
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Room{
		ID:        params.ID,
		Number:    number,
		Floor:     params.Floor,
		RateType:  params.RateType,
		Status:    StatusAvailable,
		Notes:     strings.TrimSpace(params.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
		return s, nil
	}
	return "", ErrInvalidStatus
}

func (r *Room) ChangeStatus(next Status, now time.Time) error {
	if r.Status == next {
		return nil
	}
	for _, allowed := range allowedTransitions[r.Status] {
		if allowed == next {
			r.Status = next
			r.UpdatedAt = now.UTC()
			return nil
		}
	}
	return ErrInvalidTransition
}

func (r *Room) SetRateType(rt RateType, now time.Time) error {
	if strings.TrimSpace(string(rt)) == "" {
		return ErrRateTypeRequired
	}
	r.RateType = rt
	r.UpdatedAt = now.UTC()
	return nil
}
