package dto

import (
	"time"

	"frontdesk/internal/domain/expense"
)

type ExpenseView struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      MoneyDTO  `json:"amount"`
	IncurredAt  time.Time `json:"incurred_at"`
	RecordedBy  string    `json:"recorded_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExpenseCollection struct {
	Items []ExpenseView `json:"items"`
}

func MapExpense(entry *expense.Expense) ExpenseView {
	if entry == nil {
		return ExpenseView{}
	}
	return ExpenseView{
		ID:          string(entry.ID),
		Category:    string(entry.Category),
		Description: entry.Description,
		Amount:      MapMoney(entry.Amount),
		IncurredAt:  entry.IncurredAt,
		RecordedBy:  entry.RecordedBy,
		CreatedAt:   entry.CreatedAt,
	}
}
