package pricing

import (
	"context"
	"errors"
	"time"

	"staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/daterange"
)

var (
	ErrRuleNotFound = errors.New("pricing: rule not found")
	// ErrRuleOverlap is raised when a mutation would leave two rules with
	// intersecting periods on the same accommodation.
	ErrRuleOverlap = errors.New("pricing: a rule already exists for this accommodation in the selected period")
	// ErrActiveReservations protects guests with confirmed bookings from
	// retroactive price changes.
	ErrActiveReservations = errors.New("pricing: cannot modify this period because it contains active reservations")
	ErrNegativeOverride   = errors.New("pricing: override price must be non-negative")
	ErrMultiplier         = errors.New("pricing: multiplier must be positive")
)

type RuleID string

// PeriodType is a descriptive tag only; it has no behavioral effect.
type PeriodType string

const (
	PeriodSeasonal PeriodType = "SEASONAL"
	PeriodWeekend  PeriodType = "WEEKEND"
	PeriodHoliday  PeriodType = "HOLIDAY"
	PeriodCustom   PeriodType = "CUSTOM"
)

// Rule is a host-defined date-range price override or multiplier layered
// over the accommodation's base nightly price. For a given accommodation no
// two rules' periods may overlap (closed-interval test).
type Rule struct {
	ID              RuleID
	AccommodationID accommodations.AccommodationID
	Period          daterange.Period
	// OverridePrice, when set, wins over the multiplier for every night
	// the rule covers.
	OverridePrice *float64
	Multiplier    float64
	PeriodType    PeriodType
	MinStayDays   int
	MaxStayDays   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NightlyPrice resolves the price of one night covered by this rule.
func (r *Rule) NightlyPrice(basePrice float64) float64 {
	if r.OverridePrice != nil {
		return *r.OverridePrice
	}
	return basePrice * r.Multiplier
}

func (r *Rule) Validate() error {
	if err := r.Period.Validate(); err != nil {
		return err
	}
	if r.OverridePrice != nil && *r.OverridePrice < 0 {
		return ErrNegativeOverride
	}
	if r.Multiplier <= 0 {
		return ErrMultiplier
	}
	return nil
}

type Repository interface {
	ByID(ctx context.Context, accID accommodations.AccommodationID, id RuleID) (*Rule, error)
	// ListByAccommodation returns rules sorted by period start ascending;
	// the quote engine depends on this order.
	ListByAccommodation(ctx context.Context, accID accommodations.AccommodationID) ([]*Rule, error)
	// AnyOverlapping reports whether a persisted rule intersects the
	// period, excluding excludeID when non-empty.
	AnyOverlapping(ctx context.Context, accID accommodations.AccommodationID, period daterange.Period, excludeID RuleID) (bool, error)
	Save(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, accID accommodations.AccommodationID, id RuleID) error
}
