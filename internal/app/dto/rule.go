package dto

import (
	domainpricing "staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
)

// Rule is the public response shape of a pricing rule. Dates travel as
// YYYY-MM-DD strings.
type Rule struct {
	ID              string   `json:"id"`
	AccommodationID string   `json:"accommodationId"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	OverridePrice   *float64 `json:"overridePrice,omitempty"`
	Multiplier      float64  `json:"multiplier"`
	PeriodType      string   `json:"periodType,omitempty"`
	MinStayDays     int      `json:"minStayDays,omitempty"`
	MaxStayDays     int      `json:"maxStayDays,omitempty"`
}

func MapRule(rule *domainpricing.Rule) Rule {
	if rule == nil {
		return Rule{}
	}
	return Rule{
		ID:              string(rule.ID),
		AccommodationID: string(rule.AccommodationID),
		StartDate:       rule.Period.Start.Format(daterange.DayFormat),
		EndDate:         rule.Period.End.Format(daterange.DayFormat),
		OverridePrice:   rule.OverridePrice,
		Multiplier:      rule.Multiplier,
		PeriodType:      string(rule.PeriodType),
		MinStayDays:     rule.MinStayDays,
		MaxStayDays:     rule.MaxStayDays,
	}
}

func MapRules(rules []*domainpricing.Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		out = append(out, MapRule(rule))
	}
	return out
}
