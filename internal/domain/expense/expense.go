package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"frontdesk/internal/domain/shared/money"
)

var (
	ErrIDRequired          = errors.New("expense: id is required")
	ErrCategoryRequired    = errors.New("expense: category is required")
	ErrDescriptionRequired = errors.New("expense: description is required")
	ErrNonPositiveAmount   = errors.New("expense: amount must be positive")
	ErrNotFound            = errors.New("expense: not found")
)

type ID string

type Category string

const (
	CategorySupplies    Category = "SUPPLIES"
	CategoryMaintenance Category = "MAINTENANCE"
	CategoryServices    Category = "SERVICES"
	CategoryPayroll     Category = "PAYROLL"
	CategoryOther       Category = "OTHER"
)

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	switch c {
	case CategorySupplies, CategoryMaintenance, CategoryServices, CategoryPayroll, CategoryOther:
		return c, nil
	}
	return "", ErrCategoryRequired
}

// Expense is an operating cost entry recorded at the front desk. It is
// only aggregated for the dashboard and never touches stay billing.
type Expense struct {
	ID          ID
	Category    Category
	Description string
	Amount      money.Money
	IncurredAt  time.Time
	RecordedBy  string
	CreatedAt   time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Expense, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Expense, error)
	Save(ctx context.Context, e *Expense) error
}

type CreateParams struct {
	ID          ID
	Category    Category
	Description string
	Amount      money.Money
	IncurredAt  time.Time
	RecordedBy  string
	Now         time.Time
}

func NewExpense(params CreateParams) (*Expense, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	category := params.Category
	if strings.TrimSpace(string(category)) == "" {
		return nil, ErrCategoryRequired
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if params.Amount.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	incurred := params.IncurredAt
	if incurred.IsZero() {
		incurred = now
	}
	return &Expense{
		ID:          params.ID,
		Category:    category,
		Description: description,
		Amount:      params.Amount,
		IncurredAt:  incurred.UTC(),
		RecordedBy:  strings.TrimSpace(params.RecordedBy),
		CreatedAt:   now.UTC(),
	}, nil
}
