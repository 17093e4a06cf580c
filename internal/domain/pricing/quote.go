package pricing

import (
	"errors"
	"math"

	"staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/daterange"
)

var (
	ErrNoNights     = errors.New("pricing: stay must cover at least one night")
	ErrGuestsNeeded = errors.New("pricing: guest count must be at least 1")
)

// Quote is the priced result of a stay request. Total and PricePerNight are
// rounded to cents; the per-night accumulation is kept unrounded.
type Quote struct {
	Nights        int
	Total         float64
	PricePerNight float64
	RulesApplied  int
}

// PriceStay computes the total price of a stay by overlaying pricing rules
// onto the accommodation's base price. For each night the first rule (in
// period-start order) whose closed period contains the night applies; its
// override price wins over its multiplier. Without a matching rule the night
// costs the base price. Unless the accommodation is priced per unit, the
// nightly price is multiplied by the guest count.
func PriceStay(acc *accommodations.Accommodation, rules []*Rule, stay daterange.StayRange, guests int) (Quote, error) {
	if err := stay.Validate(); err != nil {
		return Quote{}, err
	}
	nights := stay.Nights()
	if nights < 1 {
		return Quote{}, ErrNoNights
	}
	if guests < 1 {
		return Quote{}, ErrGuestsNeeded
	}

	var total float64
	applied := 0
	for i := 0; i < nights; i++ {
		night := stay.NightAt(i)
		price := acc.BasePrice
		for _, rule := range rules {
			if rule.Period.ContainsDay(night) {
				price = rule.NightlyPrice(acc.BasePrice)
				applied++
				break
			}
		}
		if !acc.IsPerUnit {
			price *= float64(guests)
		}
		total += price
	}

	return Quote{
		Nights:        nights,
		Total:         roundCents(total),
		PricePerNight: roundCents(total / float64(nights)),
		RulesApplied:  applied,
	}, nil
}

// roundCents applies half-up rounding at the cent boundary.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
