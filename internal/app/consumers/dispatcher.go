package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"staybase/internal/app/services/accommodation"
	"staybase/internal/app/services/blocksvc"
	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/identity"
	"staybase/internal/domain/shared/daterange"
)

const (
	TopicReservationCreated = "reservation.created"
	TopicReservationRemoved = "reservation.removed"
	TopicUserDeleted        = "user.deleted"
)

// Topics lists everything the dispatcher subscribes to, with the configured
// prefix applied.
func Topics(prefix string) []string {
	return []string{
		prefix + TopicReservationCreated,
		prefix + TopicReservationRemoved,
		prefix + TopicUserDeleted,
	}
}

// Dispatcher routes bus messages to the blocked-period store and the
// accommodation cleanup path. Handlers are idempotent, so at-least-once and
// out-of-order delivery are safe; a returned error leaves the offset
// uncommitted and the transport redelivers.
type Dispatcher struct {
	Blocks         *blocksvc.Service
	Accommodations *accommodation.Service
	TopicPrefix    string
	Logger         *slog.Logger
}

func (d *Dispatcher) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	topic := strings.TrimPrefix(msg.Topic, d.TopicPrefix)
	switch topic {
	case TopicReservationCreated:
		return d.handleReservationCreated(ctx, msg.Value)
	case TopicReservationRemoved:
		return d.handleReservationRemoved(ctx, msg.Value)
	case TopicUserDeleted:
		return d.handleUserDeleted(ctx, msg.Value)
	default:
		if d.Logger != nil {
			d.Logger.Warn("message on unexpected topic dropped", "topic", msg.Topic)
		}
		return nil
	}
}

func (d *Dispatcher) handleReservationCreated(ctx context.Context, payload []byte) error {
	var event ReservationCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		// A malformed payload never becomes valid; drop instead of
		// redelivering forever.
		if d.Logger != nil {
			d.Logger.Error("undecodable reservation.created payload dropped", "error", err)
		}
		return nil
	}
	start, err := daterange.ParseDay(event.StartDate)
	if err != nil {
		return d.drop("reservation.created", err)
	}
	end, err := daterange.ParseDay(event.EndDate)
	if err != nil {
		return d.drop("reservation.created", err)
	}
	if d.Logger != nil {
		d.Logger.Info("reservation.created received", "reservation_id", event.ReservationID, "accommodation_id", event.AccommodationID)
	}
	if err := d.Blocks.CreateReservationBlock(ctx, blocksvc.ReservationBlockParams{
		ReservationID:   event.ReservationID,
		AccommodationID: domainacc.AccommodationID(event.AccommodationID),
		StartDate:       start,
		EndDate:         end,
	}); err != nil {
		if d.Logger != nil {
			d.Logger.Error("reservation block creation failed", "reservation_id", event.ReservationID, "error", err)
		}
		return err
	}
	return nil
}

func (d *Dispatcher) handleReservationRemoved(ctx context.Context, payload []byte) error {
	var event ReservationRemovedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		if d.Logger != nil {
			d.Logger.Error("undecodable reservation.removed payload dropped", "error", err)
		}
		return nil
	}
	if err := d.Blocks.RemoveReservationBlock(ctx, event.ReservationID); err != nil {
		if d.Logger != nil {
			d.Logger.Error("reservation block removal failed", "reservation_id", event.ReservationID, "error", err)
		}
		return err
	}
	return nil
}

func (d *Dispatcher) handleUserDeleted(ctx context.Context, payload []byte) error {
	var event UserDeletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		if d.Logger != nil {
			d.Logger.Error("undecodable user.deleted payload dropped", "error", err)
		}
		return nil
	}
	// Only hosts own accommodations; other roles have nothing to clean up.
	if identity.ParseRole(event.UserRole) != identity.RoleHost {
		if d.Logger != nil {
			d.Logger.Debug("user.deleted ignored for non-host", "user_id", event.UserID, "role", event.UserRole)
		}
		return nil
	}
	removed, err := d.Accommodations.RemoveAllByHost(ctx, domainacc.HostID(event.UserID))
	if err != nil {
		if d.Logger != nil {
			d.Logger.Error("host cleanup failed", "user_id", event.UserID, "error", err)
		}
		return err
	}
	if d.Logger != nil {
		d.Logger.Info("host accommodations cleaned up", "user_id", event.UserID, "removed", removed)
	}
	return nil
}

func (d *Dispatcher) drop(topic string, err error) error {
	if d.Logger != nil {
		d.Logger.Error(fmt.Sprintf("invalid %s payload dropped", topic), "error", err)
	}
	return nil
}
