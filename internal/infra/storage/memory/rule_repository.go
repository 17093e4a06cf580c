package memory

import (
	"context"
	"sort"
	"sync"

	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
)

type RuleRepository struct {
	mu    sync.RWMutex
	items map[pricing.RuleID]pricing.Rule
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{items: make(map[pricing.RuleID]pricing.Rule)}
}

func (r *RuleRepository) ByID(ctx context.Context, accID domainacc.AccommodationID, id pricing.RuleID) (*pricing.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.items[id]
	if !ok || rule.AccommodationID != accID {
		return nil, pricing.ErrRuleNotFound
	}
	return cloneRule(rule), nil
}

func (r *RuleRepository) ListByAccommodation(ctx context.Context, accID domainacc.AccommodationID) ([]*pricing.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*pricing.Rule
	for _, rule := range r.items {
		if rule.AccommodationID == accID {
			out = append(out, cloneRule(rule))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period.Start.Before(out[j].Period.Start)
	})
	return out, nil
}

func (r *RuleRepository) AnyOverlapping(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period, excludeID pricing.RuleID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.items {
		if rule.AccommodationID != accID || rule.ID == excludeID {
			continue
		}
		if rule.Period.Overlaps(period) {
			return true, nil
		}
	}
	return false, nil
}

func (r *RuleRepository) Save(ctx context.Context, rule *pricing.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rule.ID] = *cloneRule(*rule)
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, accID domainacc.AccommodationID, id pricing.RuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.items[id]
	if !ok || rule.AccommodationID != accID {
		return pricing.ErrRuleNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *RuleRepository) deleteByAccommodation(accID domainacc.AccommodationID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rule := range r.items {
		if rule.AccommodationID == accID {
			delete(r.items, id)
		}
	}
}

func cloneRule(rule pricing.Rule) *pricing.Rule {
	out := rule
	if rule.OverridePrice != nil {
		v := *rule.OverridePrice
		out.OverridePrice = &v
	}
	return &out
}
