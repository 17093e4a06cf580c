package rules

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybase/internal/app/tx"
	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
	"staybase/internal/domain/identity"
	domainpricing "staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
)

// Service owns host-defined pricing rules: creation, updates and removal
// with the no-overlap invariant, plus the nightly pricing computation.
type Service struct {
	Accommodations domainacc.Repository
	Rules          domainpricing.Repository
	Blocks         domainblocks.Repository
	Tx             tx.Runner
	Logger         *slog.Logger
	Now            func() time.Time
}

type CreateRuleParams struct {
	AccommodationID domainacc.AccommodationID
	StartDate       time.Time
	EndDate         time.Time
	OverridePrice   *float64
	Multiplier      *float64
	PeriodType      domainpricing.PeriodType
	MinStayDays     int
	MaxStayDays     int
}

func (s *Service) CreateRule(ctx context.Context, params CreateRuleParams, caller identity.Caller) (*domainpricing.Rule, error) {
	period, err := daterange.NewPeriod(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}
	acc, err := s.Accommodations.ByID(ctx, params.AccommodationID)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return nil, domainacc.ErrNotOwned
	}

	multiplier := 1.0
	if params.Multiplier != nil {
		multiplier = *params.Multiplier
	}
	now := s.now()
	rule := &domainpricing.Rule{
		ID:              domainpricing.RuleID(uuid.NewString()),
		AccommodationID: acc.ID,
		Period:          period,
		OverridePrice:   params.OverridePrice,
		Multiplier:      multiplier,
		PeriodType:      params.PeriodType,
		MinStayDays:     params.MinStayDays,
		MaxStayDays:     params.MaxStayDays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	err = s.runner().InTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNoActiveReservations(ctx, acc.ID, period); err != nil {
			return err
		}
		if err := s.ensureNoOverlappingRules(ctx, acc.ID, period, ""); err != nil {
			return err
		}
		return s.Rules.Save(ctx, rule)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("pricing rule created",
			"accommodation_id", acc.ID, "rule_id", rule.ID,
			"start", period.Start.Format(daterange.DayFormat), "end", period.End.Format(daterange.DayFormat))
	}
	return rule, nil
}

// UpdateRuleParams carries partial changes; nil fields keep the stored value.
type UpdateRuleParams struct {
	StartDate     *time.Time
	EndDate       *time.Time
	OverridePrice *float64
	ClearOverride bool
	Multiplier    *float64
	PeriodType    *domainpricing.PeriodType
	MinStayDays   *int
	MaxStayDays   *int
}

func (s *Service) UpdateRule(ctx context.Context, accID domainacc.AccommodationID, ruleID domainpricing.RuleID, params UpdateRuleParams, caller identity.Caller) (*domainpricing.Rule, error) {
	rule, err := s.Rules.ByID(ctx, accID, ruleID)
	if err != nil {
		return nil, err
	}
	acc, err := s.Accommodations.ByID(ctx, accID)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return nil, domainacc.ErrNotOwned
	}

	effectiveStart := rule.Period.Start
	if params.StartDate != nil {
		effectiveStart = *params.StartDate
	}
	effectiveEnd := rule.Period.End
	if params.EndDate != nil {
		effectiveEnd = *params.EndDate
	}
	period, err := daterange.NewPeriod(effectiveStart, effectiveEnd)
	if err != nil {
		return nil, err
	}

	rule.Period = period
	if params.ClearOverride {
		rule.OverridePrice = nil
	} else if params.OverridePrice != nil {
		rule.OverridePrice = params.OverridePrice
	}
	if params.Multiplier != nil {
		rule.Multiplier = *params.Multiplier
	}
	if params.PeriodType != nil {
		rule.PeriodType = *params.PeriodType
	}
	if params.MinStayDays != nil {
		rule.MinStayDays = *params.MinStayDays
	}
	if params.MaxStayDays != nil {
		rule.MaxStayDays = *params.MaxStayDays
	}
	rule.UpdatedAt = s.now()
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	err = s.runner().InTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNoActiveReservations(ctx, accID, period); err != nil {
			return err
		}
		if err := s.ensureNoOverlappingRules(ctx, accID, period, rule.ID); err != nil {
			return err
		}
		return s.Rules.Save(ctx, rule)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("pricing rule updated", "accommodation_id", accID, "rule_id", rule.ID)
	}
	return rule, nil
}

// DeleteRule refuses to remove a rule whose period overlaps an active
// reservation block: guests keep the price they booked under.
func (s *Service) DeleteRule(ctx context.Context, accID domainacc.AccommodationID, ruleID domainpricing.RuleID, caller identity.Caller) error {
	rule, err := s.Rules.ByID(ctx, accID, ruleID)
	if err != nil {
		return err
	}
	acc, err := s.Accommodations.ByID(ctx, accID)
	if err != nil {
		return err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return domainacc.ErrNotOwned
	}

	err = s.runner().InTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNoActiveReservations(ctx, accID, rule.Period); err != nil {
			return err
		}
		return s.Rules.Delete(ctx, accID, ruleID)
	})
	if err != nil {
		return err
	}

	if s.Logger != nil {
		s.Logger.Info("pricing rule deleted", "accommodation_id", accID, "rule_id", ruleID)
	}
	return nil
}

// ListRules returns the accommodation's rules sorted by start date.
func (s *Service) ListRules(ctx context.Context, accID domainacc.AccommodationID) ([]*domainpricing.Rule, error) {
	if _, err := s.Accommodations.ByID(ctx, accID); err != nil {
		return nil, err
	}
	return s.Rules.ListByAccommodation(ctx, accID)
}

// PriceStay quotes a stay against the accommodation's current rules.
func (s *Service) PriceStay(ctx context.Context, acc *domainacc.Accommodation, stay daterange.StayRange, guests int) (domainpricing.Quote, error) {
	rules, err := s.Rules.ListByAccommodation(ctx, acc.ID)
	if err != nil {
		return domainpricing.Quote{}, err
	}
	return domainpricing.PriceStay(acc, rules, stay, guests)
}

func (s *Service) ensureNoActiveReservations(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period) error {
	overlap, err := s.Blocks.AnyReservationOverlap(ctx, accID, period)
	if err != nil {
		return err
	}
	if overlap {
		return domainpricing.ErrActiveReservations
	}
	return nil
}

func (s *Service) ensureNoOverlappingRules(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period, excludeID domainpricing.RuleID) error {
	overlap, err := s.Rules.AnyOverlapping(ctx, accID, period, excludeID)
	if err != nil {
		return err
	}
	if overlap {
		return domainpricing.ErrRuleOverlap
	}
	return nil
}

func (s *Service) runner() tx.Runner {
	if s.Tx != nil {
		return s.Tx
	}
	return tx.NoopRunner{}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
