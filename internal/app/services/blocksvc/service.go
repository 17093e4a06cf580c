package blocksvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staybase/internal/app/tx"
	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
	"staybase/internal/domain/identity"
	"staybase/internal/domain/shared/daterange"
)

var ErrReservationIDRequired = errors.New("blocksvc: reservation id is required")

// Service owns blocked periods: host-authored manual blocks and idempotent
// reservation-driven blocks fed by the event adapters.
type Service struct {
	Accommodations domainacc.Repository
	Blocks         domainblocks.Repository
	Tx             tx.Runner
	Logger         *slog.Logger
	Now            func() time.Time
}

type CreateManualBlockParams struct {
	AccommodationID domainacc.AccommodationID
	StartDate       time.Time
	EndDate         time.Time
	Notes           string
}

// CreateManualBlock rejects periods intersecting a RESERVATION block but
// deliberately allows stacking over other MANUAL blocks.
func (s *Service) CreateManualBlock(ctx context.Context, params CreateManualBlockParams, caller identity.Caller) (*domainblocks.BlockedPeriod, error) {
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

	block := &domainblocks.BlockedPeriod{
		ID:              domainblocks.BlockID(uuid.NewString()),
		AccommodationID: acc.ID,
		Period:          period,
		Reason:          domainblocks.ReasonManual,
		Notes:           strings.TrimSpace(params.Notes),
		CreatedAt:       s.now(),
	}

	err = s.runner().InTransaction(ctx, func(ctx context.Context) error {
		overlap, err := s.Blocks.AnyReservationOverlap(ctx, acc.ID, period)
		if err != nil {
			return err
		}
		if overlap {
			return domainblocks.ErrActiveReservations
		}
		return s.Blocks.Save(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("manual block created",
			"accommodation_id", acc.ID, "block_id", block.ID,
			"start", period.Start.Format(daterange.DayFormat), "end", period.End.Format(daterange.DayFormat))
	}
	return block, nil
}

func (s *Service) DeleteManualBlock(ctx context.Context, accID domainacc.AccommodationID, blockID domainblocks.BlockID, caller identity.Caller) error {
	block, err := s.Blocks.ManualByID(ctx, accID, blockID)
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
	if err := s.Blocks.Delete(ctx, accID, block.ID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("manual block deleted", "accommodation_id", accID, "block_id", blockID)
	}
	return nil
}

func (s *Service) ListBlocks(ctx context.Context, accID domainacc.AccommodationID) ([]*domainblocks.BlockedPeriod, error) {
	if _, err := s.Accommodations.ByID(ctx, accID); err != nil {
		return nil, err
	}
	return s.Blocks.ListByAccommodation(ctx, accID)
}

type ReservationBlockParams struct {
	ReservationID   string
	AccommodationID domainacc.AccommodationID
	StartDate       time.Time
	EndDate         time.Time
}

// CreateReservationBlock is idempotent on reservation id: replays and
// duplicate deliveries of reservation.created are no-ops.
func (s *Service) CreateReservationBlock(ctx context.Context, params ReservationBlockParams) error {
	if strings.TrimSpace(params.ReservationID) == "" {
		return ErrReservationIDRequired
	}
	period, err := daterange.NewPeriod(params.StartDate, params.EndDate)
	if err != nil {
		return err
	}

	existing, err := s.Blocks.ByReservationID(ctx, params.ReservationID)
	if err != nil && !errors.Is(err, domainblocks.ErrBlockNotFound) {
		return err
	}
	if existing != nil {
		if s.Logger != nil {
			s.Logger.Debug("reservation block already exists", "reservation_id", params.ReservationID)
		}
		return nil
	}

	block := &domainblocks.BlockedPeriod{
		ID:              domainblocks.BlockID(uuid.NewString()),
		AccommodationID: params.AccommodationID,
		Period:          period,
		Reason:          domainblocks.ReasonReservation,
		ReservationID:   params.ReservationID,
		CreatedAt:       s.now(),
	}
	if err := s.Blocks.Save(ctx, block); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("reservation block created",
			"accommodation_id", params.AccommodationID, "reservation_id", params.ReservationID)
	}
	return nil
}

// RemoveReservationBlock tolerates absence so late or duplicate
// reservation.removed deliveries stay harmless.
func (s *Service) RemoveReservationBlock(ctx context.Context, reservationID string) error {
	if strings.TrimSpace(reservationID) == "" {
		return ErrReservationIDRequired
	}
	if err := s.Blocks.DeleteByReservationID(ctx, reservationID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("reservation block removed", "reservation_id", reservationID)
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
