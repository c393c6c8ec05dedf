package money

import (
	"errors"
	"testing"
)

func TestNewValidatesCurrency(t *testing.T) {
	m, err := New(150, "pen")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Currency != "PEN" {
		t.Errorf("Currency = %q, want PEN", m.Currency)
	}
	if _, err := New(150, "soles"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("long code: err = %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	a := Must(300, "PEN")
	b := Must(120, "PEN")

	sum, err := a.Add(b)
	if err != nil || sum.Amount != 420 {
		t.Errorf("Add = %+v, %v", sum, err)
	}
	diff, err := a.Sub(b)
	if err != nil || diff.Amount != 180 {
		t.Errorf("Sub = %+v, %v", diff, err)
	}
	if got := a.Multiply(4); got.Amount != 1200 || got.Currency != "PEN" {
		t.Errorf("Multiply = %+v", got)
	}

	if _, err := a.Add(Must(10, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("mixed currencies: err = %v", err)
	}
}

func TestPredicates(t *testing.T) {
	if !Zero("PEN").IsZero() {
		t.Error("Zero should be zero")
	}
	if !Must(-5, "PEN").IsNegative() {
		t.Error("negative amount not reported")
	}
	if Must(5, "PEN").IsNegative() {
		t.Error("positive amount reported negative")
	}
}
