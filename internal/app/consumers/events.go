package consumers

// Wire shapes of the events this service ingests. Dates travel as
// YYYY-MM-DD strings.

type ReservationCreatedEvent struct {
	ReservationID   string `json:"reservationId"`
	AccommodationID string `json:"accommodationId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

type ReservationRemovedEvent struct {
	ReservationID string `json:"reservationId"`
}

type UserDeletedEvent struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserRole  string `json:"userRole"`
}
