package accommodations

import "time"

type CreatedEvent struct {
	AccommodationID AccommodationID
	HostID          HostID
	At              time.Time
}

func (e CreatedEvent) EventName() string     { return "accommodation.created" }
func (e CreatedEvent) AggregateID() string   { return string(e.AccommodationID) }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

type RemovedEvent struct {
	AccommodationID AccommodationID
	HostID          HostID
	At              time.Time
}

func (e RemovedEvent) EventName() string     { return "accommodation.removed" }
func (e RemovedEvent) AggregateID() string   { return string(e.AccommodationID) }
func (e RemovedEvent) OccurredAt() time.Time { return e.At }
