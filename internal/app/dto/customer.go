package dto

import (
	"time"

	"frontdesk/internal/domain/customer"
)

type CustomerView struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	DocumentID string    `json:"document_id"`
	Phone      string    `json:"phone,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CustomerCollection struct {
	Items []CustomerView `json:"items"`
}

type CustomerHistory struct {
	Customer CustomerView      `json:"customer"`
	Stays    []ReservationView `json:"stays"`
}

func MapCustomer(guest *customer.Customer) CustomerView {
	if guest == nil {
		return CustomerView{}
	}
	return CustomerView{
		ID:         string(guest.ID),
		FullName:   guest.FullName,
		DocumentID: guest.DocumentID,
		Phone:      guest.Phone,
		Notes:      guest.Notes,
		CreatedAt:  guest.CreatedAt,
		UpdatedAt:  guest.UpdatedAt,
	}
}
