package rooms

import (
	"context"
	"errors"
	"strings"
	"time"

	"frontdesk/internal/domain/shared/money"
)

var (
	ErrCurrencyRequired = errors.New("rooms: rate plan currency is required")
	ErrNegativeRate     = errors.New("rooms: nightly rate cannot be negative")
	ErrRatePlanNotFound = errors.New("rooms: rate plan not found")
)

// RatePlan is the admin-configured mapping from rate type to nightly price.
// Billing receives it by value so edits to the plan never leak into an
// in-flight recalculation.
type RatePlan struct {
	Currency  string
	Nightly   map[RateType]money.Money
	UpdatedAt time.Time
	Version   int64
}

type RatePlanRepository interface {
	Load(ctx context.Context) (*RatePlan, error)
	Save(ctx context.Context, plan *RatePlan) error
}

func NewRatePlan(currency string, now time.Time) (*RatePlan, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, ErrCurrencyRequired
	}
	return &RatePlan{
		Currency:  currency,
		Nightly:   make(map[RateType]money.Money),
		UpdatedAt: now.UTC(),
	}, nil
}

func (p *RatePlan) SetRate(rt RateType, nightly money.Money, now time.Time) error {
	if strings.TrimSpace(string(rt)) == "" {
		return ErrRateTypeRequired
	}
	if nightly.Currency != p.Currency {
		return money.ErrCurrencyMismatch
	}
	if nightly.IsNegative() {
		return ErrNegativeRate
	}
	if p.Nightly == nil {
		p.Nightly = make(map[RateType]money.Money)
	}
	p.Nightly[rt] = nightly
	p.UpdatedAt = now.UTC()
	return nil
}

// NightlyRate reports the configured price for a rate type. The second
// return value distinguishes a configured zero price from a missing entry.
func (p *RatePlan) NightlyRate(rt RateType) (money.Money, bool) {
	if p == nil || p.Nightly == nil {
		return money.Money{}, false
	}
	m, ok := p.Nightly[rt]
	return m, ok
}

// Rates returns a copy of the mapping for handing to the billing engine.
func (p *RatePlan) Rates() map[RateType]money.Money {
	out := make(map[RateType]money.Money, len(p.Nightly))
	for rt, m := range p.Nightly {
		out[rt] = m
	}
	return out
}
