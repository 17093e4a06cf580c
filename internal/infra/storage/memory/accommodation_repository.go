package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/events"
)

// AccommodationRepository is a map-backed store used in tests and local
// runs. When wired with a BlockRepository it honors stay-window exclusion
// in Search the same way the MongoDB implementation does.
type AccommodationRepository struct {
	mu     sync.RWMutex
	items  map[domainacc.AccommodationID]domainacc.Accommodation
	blocks *BlockRepository
	rules  *RuleRepository
}

func NewAccommodationRepository(rules *RuleRepository, blocks *BlockRepository) *AccommodationRepository {
	return &AccommodationRepository{
		items:  make(map[domainacc.AccommodationID]domainacc.Accommodation),
		blocks: blocks,
		rules:  rules,
	}
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainacc.AccommodationID) (*domainacc.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.items[id]
	if !ok {
		return nil, domainacc.ErrNotFound
	}
	return cloneAccommodation(acc), nil
}

func (r *AccommodationRepository) ByHost(ctx context.Context, host domainacc.HostID) ([]*domainacc.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainacc.Accommodation
	for _, acc := range r.items {
		if acc.Host == host {
			out = append(out, cloneAccommodation(acc))
		}
	}
	sortAccommodations(out)
	return out, nil
}

func (r *AccommodationRepository) Save(ctx context.Context, acc *domainacc.Accommodation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[acc.ID] = *cloneAccommodation(*acc)
	return nil
}

func (r *AccommodationRepository) Delete(ctx context.Context, id domainacc.AccommodationID) error {
	r.mu.Lock()
	if _, ok := r.items[id]; !ok {
		r.mu.Unlock()
		return domainacc.ErrNotFound
	}
	delete(r.items, id)
	r.mu.Unlock()

	if r.rules != nil {
		r.rules.deleteByAccommodation(id)
	}
	if r.blocks != nil {
		r.blocks.deleteByAccommodation(id)
	}
	return nil
}

func (r *AccommodationRepository) Search(ctx context.Context, params domainacc.SearchParams) (domainacc.SearchResult, error) {
	params = params.Normalized()

	r.mu.RLock()
	candidates := make([]*domainacc.Accommodation, 0, len(r.items))
	for _, acc := range r.items {
		candidates = append(candidates, cloneAccommodation(acc))
	}
	r.mu.RUnlock()

	var matched []*domainacc.Accommodation
	for _, acc := range candidates {
		if params.Location != "" && !strings.Contains(strings.ToLower(acc.Location), params.Location) {
			continue
		}
		if params.Guests > 0 && !acc.FitsGuests(params.Guests) {
			continue
		}
		if params.HasStay() && r.blocks != nil && r.blocks.anyBlocksStay(acc.ID, params.Stay()) {
			continue
		}
		matched = append(matched, acc)
	}
	sortAccommodations(matched)

	total := len(matched)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return domainacc.SearchResult{Items: matched[start:end], Total: total}, nil
}

func sortAccommodations(items []*domainacc.Accommodation) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func cloneAccommodation(acc domainacc.Accommodation) *domainacc.Accommodation {
	out := acc
	out.Amenities = append([]string(nil), acc.Amenities...)
	out.PhotoKeys = append([]string(nil), acc.PhotoKeys...)
	if out.PhotoKeys == nil {
		out.PhotoKeys = []string{}
	}
	// Stored rows never carry pending events; only the live aggregate does.
	out.EventRecorder = events.EventRecorder{}
	return &out
}
