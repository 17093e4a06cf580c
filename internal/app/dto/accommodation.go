package dto

import (
	"time"

	domainacc "staybase/internal/domain/accommodations"
)

// PhotoURLResolver derives a public URL from a stored object key.
type PhotoURLResolver func(key string) string

// Accommodation is the public response shape of the aggregate.
type Accommodation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Amenities   []string  `json:"amenities"`
	PhotoURLs   []string  `json:"photoUrls"`
	MinGuests   int       `json:"minGuests"`
	MaxGuests   int       `json:"maxGuests"`
	HostID      string    `json:"hostId"`
	AutoApprove bool      `json:"autoApprove"`
	IsPerUnit   bool      `json:"isPerUnit"`
	BasePrice   float64   `json:"basePrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MapAccommodation(acc *domainacc.Accommodation, resolve PhotoURLResolver) Accommodation {
	if acc == nil {
		return Accommodation{}
	}
	urls := make([]string, 0, len(acc.PhotoKeys))
	for _, key := range acc.PhotoKeys {
		if resolve != nil {
			urls = append(urls, resolve(key))
		} else {
			urls = append(urls, key)
		}
	}
	return Accommodation{
		ID:          string(acc.ID),
		Name:        acc.Name,
		Location:    acc.Location,
		Amenities:   append([]string(nil), acc.Amenities...),
		PhotoURLs:   urls,
		MinGuests:   acc.MinGuests,
		MaxGuests:   acc.MaxGuests,
		HostID:      string(acc.Host),
		AutoApprove: acc.AutoApprove,
		IsPerUnit:   acc.IsPerUnit,
		BasePrice:   acc.BasePrice,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
	}
}

// StayPricing is attached to search results when a stay window was supplied.
type StayPricing struct {
	Nights            int     `json:"nights"`
	TotalPriceForStay float64 `json:"totalPriceForStay"`
	PricePerNight     float64 `json:"pricePerNight"`
	RulesApplied      int     `json:"rulesApplied"`
}

// SearchItem is one search hit, optionally carrying a pricing overlay.
type SearchItem struct {
	Accommodation
	Pricing *StayPricing `json:"pricing,omitempty"`
}

// Paginated wraps a page of results.
type Paginated[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
