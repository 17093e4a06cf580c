package accommodation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"staybase/internal/app/dto"
	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/identity"
	domainpricing "staybase/internal/domain/pricing"
)

const (
	maxPhotosPerUpload = 10
	maxPhotoSizeBytes  = 5 * 1024 * 1024
)

var (
	ErrTooManyPhotos = errors.New("accommodation: at most 10 photos per upload")
	ErrPhotoTooLarge = errors.New("accommodation: photo exceeds 5MB limit")
	ErrNotImage      = errors.New("accommodation: only image uploads are accepted")
	ErrNoPhotos      = errors.New("accommodation: at least one photo is required")
	ErrCannotManage  = errors.New("accommodation: host or admin role required")
)

// PhotoStorage stores photo blobs under opaque keys and derives public URLs.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

// EventPublisher pushes lifecycle events onto the bus; peer services mirror
// accommodation data from them.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Service orchestrates the accommodation aggregate lifecycle and composes
// the pricing engine and blocked-period store for search-with-pricing.
type Service struct {
	Accommodations domainacc.Repository
	Rules          domainpricing.Repository
	Photos         PhotoStorage
	Publisher      EventPublisher
	Logger         *slog.Logger
	Now            func() time.Time
}

type CreateParams struct {
	Name        string
	Location    string
	Amenities   []string
	MinGuests   int
	MaxGuests   int
	AutoApprove bool
	IsPerUnit   bool
	BasePrice   float64
}

func (s *Service) Create(ctx context.Context, params CreateParams, caller identity.Caller) (*domainacc.Accommodation, error) {
	if !caller.CanManageListings() {
		return nil, ErrCannotManage
	}
	acc, err := domainacc.New(domainacc.CreateParams{
		ID:          domainacc.AccommodationID(uuid.NewString()),
		Host:        domainacc.HostID(caller.ID),
		Name:        params.Name,
		Location:    params.Location,
		Amenities:   params.Amenities,
		MinGuests:   params.MinGuests,
		MaxGuests:   params.MaxGuests,
		AutoApprove: params.AutoApprove,
		IsPerUnit:   params.IsPerUnit,
		BasePrice:   params.BasePrice,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Accommodations.Save(ctx, acc); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, acc)
	if s.Logger != nil {
		s.Logger.Info("accommodation created", "accommodation_id", acc.ID, "host_id", acc.Host)
	}
	return acc, nil
}

func (s *Service) Get(ctx context.Context, id domainacc.AccommodationID) (*domainacc.Accommodation, error) {
	return s.Accommodations.ByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id domainacc.AccommodationID, params domainacc.UpdateParams, caller identity.Caller) (*domainacc.Accommodation, error) {
	acc, err := s.Accommodations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return nil, domainacc.ErrNotOwned
	}
	params.Now = s.now()
	if err := acc.Update(params); err != nil {
		return nil, err
	}
	if err := s.Accommodations.Save(ctx, acc); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("accommodation updated", "accommodation_id", acc.ID)
	}
	return acc, nil
}

// Delete removes the aggregate, its photos from storage, and cascades to
// pricing rules and blocked periods.
func (s *Service) Delete(ctx context.Context, id domainacc.AccommodationID, caller identity.Caller) error {
	acc, err := s.Accommodations.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return domainacc.ErrNotOwned
	}
	return s.remove(ctx, acc)
}

// RemoveAllByHost is the user-deleted cleanup path. It is driven by trusted
// internal events and therefore skips ownership checks.
func (s *Service) RemoveAllByHost(ctx context.Context, host domainacc.HostID) (int, error) {
	accs, err := s.Accommodations.ByHost(ctx, host)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, acc := range accs {
		if err := s.remove(ctx, acc); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Service) remove(ctx context.Context, acc *domainacc.Accommodation) error {
	for _, key := range acc.PhotoKeys {
		if s.Photos == nil {
			break
		}
		if err := s.Photos.Remove(ctx, key); err != nil {
			return fmt.Errorf("delete photo %s: %w", key, err)
		}
	}
	if err := s.Accommodations.Delete(ctx, acc.ID); err != nil {
		return err
	}
	acc.Record(domainacc.RemovedEvent{AccommodationID: acc.ID, HostID: acc.Host, At: s.now()})
	s.publishEvents(ctx, acc)
	if s.Logger != nil {
		s.Logger.Info("accommodation removed", "accommodation_id", acc.ID, "host_id", acc.Host)
	}
	return nil
}

// PhotoFile is one part of a multipart photo upload.
type PhotoFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadPhotos stores every file or none: the first failed upload aborts the
// request and already-stored objects are removed best-effort.
func (s *Service) UploadPhotos(ctx context.Context, id domainacc.AccommodationID, files []PhotoFile, caller identity.Caller) (*domainacc.Accommodation, error) {
	acc, err := s.Accommodations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(domainacc.HostID(caller.ID)) {
		return nil, domainacc.ErrNotOwned
	}
	if len(files) == 0 {
		return nil, ErrNoPhotos
	}
	if len(files) > maxPhotosPerUpload {
		return nil, ErrTooManyPhotos
	}
	for _, f := range files {
		if f.Size > maxPhotoSizeBytes {
			return nil, ErrPhotoTooLarge
		}
		if !strings.HasPrefix(f.ContentType, "image/") {
			return nil, ErrNotImage
		}
	}
	if s.Photos == nil {
		return nil, errors.New("accommodation: photo storage unavailable")
	}

	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		key := objectKey(acc.ID, f.Filename)
		if _, err := s.Photos.Upload(ctx, key, f.Reader, f.ContentType); err != nil {
			s.cleanupPhotos(ctx, uploaded)
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		uploaded = append(uploaded, key)
	}

	acc.AddPhotoKeys(uploaded, s.now())
	if err := s.Accommodations.Save(ctx, acc); err != nil {
		s.cleanupPhotos(ctx, uploaded)
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("photos uploaded", "accommodation_id", acc.ID, "count", len(uploaded))
	}
	return acc, nil
}

// Search composes filters with the availability exclusion and, when a stay
// window was supplied, attaches the computed price to every hit.
func (s *Service) Search(ctx context.Context, params domainacc.SearchParams) (dto.Paginated[dto.SearchItem], error) {
	params = params.Normalized()
	result, err := s.Accommodations.Search(ctx, params)
	if err != nil {
		return dto.Paginated[dto.SearchItem]{}, err
	}

	items := make([]dto.SearchItem, 0, len(result.Items))
	for _, acc := range result.Items {
		item := dto.SearchItem{Accommodation: dto.MapAccommodation(acc, s.photoURL)}
		if params.HasStay() {
			guests := params.Guests
			if guests < 1 {
				guests = 1
			}
			rules, err := s.Rules.ListByAccommodation(ctx, acc.ID)
			if err != nil {
				return dto.Paginated[dto.SearchItem]{}, err
			}
			quote, err := domainpricing.PriceStay(acc, rules, params.Stay(), guests)
			if err != nil {
				return dto.Paginated[dto.SearchItem]{}, err
			}
			item.Pricing = &dto.StayPricing{
				Nights:            quote.Nights,
				TotalPriceForStay: quote.Total,
				PricePerNight:     quote.PricePerNight,
				RulesApplied:      quote.RulesApplied,
			}
		}
		items = append(items, item)
	}

	return dto.Paginated[dto.SearchItem]{
		Data:     items,
		Total:    result.Total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// PhotoURL exposes key-to-URL derivation for response mapping.
func (s *Service) PhotoURL(key string) string {
	return s.photoURL(key)
}

func (s *Service) photoURL(key string) string {
	if s.Photos == nil {
		return key
	}
	return s.Photos.PublicURL(key)
}

func (s *Service) cleanupPhotos(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.Photos.Remove(ctx, key); err != nil && s.Logger != nil {
			s.Logger.Warn("orphaned photo cleanup failed", "key", key, "error", err)
		}
	}
}

// publishEvents drains the aggregate's recorded events onto the bus.
// Publishing is best-effort: a broker outage must not fail the request.
func (s *Service) publishEvents(ctx context.Context, acc *domainacc.Accommodation) {
	if s.Publisher == nil {
		acc.ClearEvents()
		return
	}
	for _, event := range acc.PendingEvents() {
		payload, err := json.Marshal(eventEnvelope{
			AccommodationID: event.AggregateID(),
			HostID:          string(acc.Host),
			At:              event.OccurredAt(),
		})
		if err != nil {
			continue
		}
		if err := s.Publisher.Publish(ctx, event.EventName(), event.AggregateID(), payload, nil); err != nil && s.Logger != nil {
			s.Logger.Warn("event publish failed", "event", event.EventName(), "accommodation_id", event.AggregateID(), "error", err)
		}
	}
	acc.ClearEvents()
}

type eventEnvelope struct {
	AccommodationID string    `json:"accommodationId"`
	HostID          string    `json:"hostId"`
	At              time.Time `json:"at"`
}

func objectKey(id domainacc.AccommodationID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", id, uuid.NewString(), ext)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
