package blocks

import (
	"context"
	"errors"
	"time"

	"staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/daterange"
)

var (
	ErrBlockNotFound = errors.New("blocks: manual block not found or not deletable")
	// ErrActiveReservations is raised when a manual block would intersect
	// a reservation-driven block.
	ErrActiveReservations = errors.New("blocks: cannot modify this period because it contains active reservations")
)

type BlockID string

// Reason tags why an accommodation is unavailable.
type Reason string

const (
	// ReasonReservation marks system-generated blocks driven by
	// reservation lifecycle events.
	ReasonReservation Reason = "RESERVATION"
	// ReasonManual marks host-authored ad-hoc blocks.
	ReasonManual Reason = "MANUAL"
)

// BlockedPeriod is a date range during which an accommodation is
// unavailable. ReservationID is set only for RESERVATION blocks and doubles
// as the idempotency key for event-driven create/remove.
type BlockedPeriod struct {
	ID              BlockID
	AccommodationID accommodations.AccommodationID
	Period          daterange.Period
	Reason          Reason
	ReservationID   string
	Notes           string
	CreatedAt       time.Time
}

type Repository interface {
	ManualByID(ctx context.Context, accID accommodations.AccommodationID, id BlockID) (*BlockedPeriod, error)
	ListByAccommodation(ctx context.Context, accID accommodations.AccommodationID) ([]*BlockedPeriod, error)
	ByReservationID(ctx context.Context, reservationID string) (*BlockedPeriod, error)
	// AnyReservationOverlap reports whether any RESERVATION block
	// intersects the period (closed-interval test).
	AnyReservationOverlap(ctx context.Context, accID accommodations.AccommodationID, period daterange.Period) (bool, error)
	Save(ctx context.Context, block *BlockedPeriod) error
	Delete(ctx context.Context, accID accommodations.AccommodationID, id BlockID) error
	// DeleteByReservationID removes the block created for a reservation;
	// absence is not an error.
	DeleteByReservationID(ctx context.Context, reservationID string) error
}
