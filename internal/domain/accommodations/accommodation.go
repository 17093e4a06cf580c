package accommodations

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybase/internal/domain/shared/events"
)

var (
	ErrNotFound      = errors.New("accommodations: accommodation not found")
	ErrNotOwned      = errors.New("accommodations: you do not own this accommodation")
	ErrNameRequired  = errors.New("accommodations: name is required")
	ErrLocation      = errors.New("accommodations: location is required")
	ErrGuestBounds   = errors.New("accommodations: minGuests must be <= maxGuests")
	ErrGuestMinimum  = errors.New("accommodations: guest limits must be at least 1")
	ErrNegativePrice = errors.New("accommodations: base price must be non-negative")
)

type AccommodationID string
type HostID string

// Accommodation is the aggregate root. Pricing rules and blocked periods are
// owned by exactly one accommodation and cannot outlive it.
type Accommodation struct {
	ID          AccommodationID
	Name        string
	Location    string
	Amenities   []string
	PhotoKeys   []string
	MinGuests   int
	MaxGuests   int
	Host        HostID
	AutoApprove bool
	IsPerUnit   bool
	BasePrice   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id AccommodationID) (*Accommodation, error)
	ByHost(ctx context.Context, host HostID) ([]*Accommodation, error)
	Save(ctx context.Context, acc *Accommodation) error
	// Delete removes the accommodation and cascades to its pricing rules
	// and blocked periods.
	Delete(ctx context.Context, id AccommodationID) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateParams struct {
	ID          AccommodationID
	Host        HostID
	Name        string
	Location    string
	Amenities   []string
	MinGuests   int
	MaxGuests   int
	AutoApprove bool
	IsPerUnit   bool
	BasePrice   float64
	Now         time.Time
}

func New(params CreateParams) (*Accommodation, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("accommodations: id is required")
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, errors.New("accommodations: host is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, ErrLocation
	}
	if params.MinGuests < 1 || params.MaxGuests < 1 {
		return nil, ErrGuestMinimum
	}
	if params.MinGuests > params.MaxGuests {
		return nil, ErrGuestBounds
	}
	if params.BasePrice < 0 {
		return nil, ErrNegativePrice
	}

	acc := &Accommodation{
		ID:          params.ID,
		Name:        strings.TrimSpace(params.Name),
		Location:    strings.TrimSpace(params.Location),
		Amenities:   append([]string(nil), params.Amenities...),
		PhotoKeys:   []string{},
		MinGuests:   params.MinGuests,
		MaxGuests:   params.MaxGuests,
		Host:        params.Host,
		AutoApprove: params.AutoApprove,
		IsPerUnit:   params.IsPerUnit,
		BasePrice:   params.BasePrice,
		CreatedAt:   params.Now.UTC(),
		UpdatedAt:   params.Now.UTC(),
	}
	acc.Record(CreatedEvent{AccommodationID: acc.ID, HostID: acc.Host, At: acc.CreatedAt})
	return acc, nil
}

// OwnedBy checks host ownership; mutations must call this before touching
// any state.
func (a *Accommodation) OwnedBy(host HostID) bool {
	return a.Host == host
}

type UpdateParams struct {
	Name        string
	Location    string
	Amenities   []string
	MinGuests   int
	MaxGuests   int
	AutoApprove bool
	IsPerUnit   bool
	BasePrice   float64
	Now         time.Time
}

func (a *Accommodation) Update(params UpdateParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return ErrLocation
	}
	if params.MinGuests < 1 || params.MaxGuests < 1 {
		return ErrGuestMinimum
	}
	if params.MinGuests > params.MaxGuests {
		return ErrGuestBounds
	}
	if params.BasePrice < 0 {
		return ErrNegativePrice
	}

	a.Name = strings.TrimSpace(params.Name)
	a.Location = strings.TrimSpace(params.Location)
	a.Amenities = append([]string(nil), params.Amenities...)
	a.MinGuests = params.MinGuests
	a.MaxGuests = params.MaxGuests
	a.AutoApprove = params.AutoApprove
	a.IsPerUnit = params.IsPerUnit
	a.BasePrice = params.BasePrice
	a.UpdatedAt = params.Now.UTC()
	return nil
}

func (a *Accommodation) AddPhotoKeys(keys []string, now time.Time) {
	a.PhotoKeys = append(a.PhotoKeys, keys...)
	a.UpdatedAt = now.UTC()
}

// FitsGuests reports whether the requested guest count falls within the
// accommodation's configured bounds.
func (a *Accommodation) FitsGuests(guests int) bool {
	return guests >= a.MinGuests && guests <= a.MaxGuests
}
