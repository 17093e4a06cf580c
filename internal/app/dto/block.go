package dto

import (
	domainblocks "staybase/internal/domain/blocks"
	"staybase/internal/domain/shared/daterange"
)

// Block is the public response shape of a blocked period.
type Block struct {
	ID              string `json:"id"`
	AccommodationID string `json:"accommodationId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Reason          string `json:"reason"`
	ReservationID   string `json:"reservationId,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func MapBlock(block *domainblocks.BlockedPeriod) Block {
	if block == nil {
		return Block{}
	}
	return Block{
		ID:              string(block.ID),
		AccommodationID: string(block.AccommodationID),
		StartDate:       block.Period.Start.Format(daterange.DayFormat),
		EndDate:         block.Period.End.Format(daterange.DayFormat),
		Reason:          string(block.Reason),
		ReservationID:   block.ReservationID,
		Notes:           block.Notes,
	}
}

func MapBlocks(blocks []*domainblocks.BlockedPeriod) []Block {
	out := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, MapBlock(block))
	}
	return out
}
