package memory

import (
	"context"
	"sort"
	"sync"

	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/blocks"
	"staybase/internal/domain/shared/daterange"
)

type BlockRepository struct {
	mu    sync.RWMutex
	items map[blocks.BlockID]blocks.BlockedPeriod
}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{items: make(map[blocks.BlockID]blocks.BlockedPeriod)}
}

func (r *BlockRepository) ManualByID(ctx context.Context, accID domainacc.AccommodationID, id blocks.BlockID) (*blocks.BlockedPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	block, ok := r.items[id]
	if !ok || block.AccommodationID != accID || block.Reason != blocks.ReasonManual {
		return nil, blocks.ErrBlockNotFound
	}
	clone := block
	return &clone, nil
}

func (r *BlockRepository) ListByAccommodation(ctx context.Context, accID domainacc.AccommodationID) ([]*blocks.BlockedPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*blocks.BlockedPeriod
	for _, block := range r.items {
		if block.AccommodationID == accID {
			clone := block
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period.Start.Before(out[j].Period.Start)
	})
	return out, nil
}

func (r *BlockRepository) ByReservationID(ctx context.Context, reservationID string) (*blocks.BlockedPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, block := range r.items {
		if block.Reason == blocks.ReasonReservation && block.ReservationID == reservationID {
			clone := block
			return &clone, nil
		}
	}
	return nil, blocks.ErrBlockNotFound
}

func (r *BlockRepository) AnyReservationOverlap(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, block := range r.items {
		if block.AccommodationID != accID || block.Reason != blocks.ReasonReservation {
			continue
		}
		if block.Period.Overlaps(period) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BlockRepository) Save(ctx context.Context, block *blocks.BlockedPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[block.ID] = *block
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, accID domainacc.AccommodationID, id blocks.BlockID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	block, ok := r.items[id]
	if !ok || block.AccommodationID != accID {
		return blocks.ErrBlockNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *BlockRepository) DeleteByReservationID(ctx context.Context, reservationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, block := range r.items {
		if block.Reason == blocks.ReasonReservation && block.ReservationID == reservationID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *BlockRepository) deleteByAccommodation(accID domainacc.AccommodationID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, block := range r.items {
		if block.AccommodationID == accID {
			delete(r.items, id)
		}
	}
}

func (r *BlockRepository) anyBlocksStay(accID domainacc.AccommodationID, stay daterange.StayRange) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, block := range r.items {
		if block.AccommodationID == accID && block.Period.BlocksStay(stay) {
			return true
		}
	}
	return false
}
