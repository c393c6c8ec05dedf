package customer

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired       = errors.New("customer: id is required")
	ErrNameRequired     = errors.New("customer: full name is required")
	ErrDocumentRequired = errors.New("customer: document id is required")
	ErrDocumentTaken    = errors.New("customer: document id already registered")
	ErrNotFound         = errors.New("customer: not found")
)

type ID string

type Customer struct {
	ID         ID
	FullName   string
	DocumentID string
	Phone      string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Customer, error)
	ByDocument(ctx context.Context, documentID string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

type CreateParams struct {
	ID         ID
	FullName   string
	DocumentID string
	Phone      string
	Notes      string
	Now        time.Time
}

func NewCustomer(params CreateParams) (*Customer, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(params.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}
	doc := strings.TrimSpace(params.DocumentID)
	if doc == "" {
		return nil, ErrDocumentRequired
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Customer{
		ID:         params.ID,
		FullName:   name,
		DocumentID: doc,
		Phone:      strings.TrimSpace(params.Phone),
		Notes:      strings.TrimSpace(params.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (c *Customer) UpdateContact(phone, notes string, now time.Time) {
	c.Phone = strings.TrimSpace(phone)
	c.Notes = strings.TrimSpace(notes)
	c.UpdatedAt = now.UTC()
}
