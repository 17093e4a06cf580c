package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("daterange: start date must be before end date")
	ErrInvalidStay   = errors.New("daterange: checkout must be after checkin")
	ErrBadDayFormat  = errors.New("daterange: dates must use YYYY-MM-DD")
)

const DayFormat = "2006-01-02"

// Day truncates t to UTC midnight. All dates in this package are compared at
// day granularity.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD wire date.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(DayFormat, value)
	if err != nil {
		return time.Time{}, ErrBadDayFormat
	}
	return t, nil
}

// Period is a closed day interval [Start, End]. Pricing rules and blocked
// periods are stored as periods: touching endpoints count as overlapping.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: Day(start), End: Day(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ErrInvalidPeriod
	}
	if !p.Start.Before(p.End) {
		return ErrInvalidPeriod
	}
	return nil
}

// Overlaps reports whether two closed intervals intersect:
// p.Start <= other.End && other.Start <= p.End.
func (p Period) Overlaps(other Period) bool {
	return !p.Start.After(other.End) && !other.Start.After(p.End)
}

// ContainsDay reports whether the day falls inside [Start, End] inclusive.
func (p Period) ContainsDay(t time.Time) bool {
	t = Day(t)
	return !t.Before(p.Start) && !t.After(p.End)
}

// BlocksStay applies the open-interval test used by availability search: a
// period conflicts with a stay when it starts before checkout and ends after
// checkin. A guest checking in on a period's end day is not blocked.
func (p Period) BlocksStay(stay StayRange) bool {
	return p.Start.Before(stay.CheckOut) && p.End.After(stay.CheckIn)
}

// StayRange is a half-open stay window [CheckIn, CheckOut); the checkout day
// is not a night.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	sr := StayRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := sr.Validate(); err != nil {
		return StayRange{}, err
	}
	return sr, nil
}

func (sr StayRange) Validate() error {
	if sr.CheckIn.IsZero() || sr.CheckOut.IsZero() {
		return ErrInvalidStay
	}
	if !sr.CheckOut.After(sr.CheckIn) {
		return ErrInvalidStay
	}
	return nil
}

func (sr StayRange) Nights() int {
	return int(sr.CheckOut.Sub(sr.CheckIn).Hours() / 24)
}

// NightAt returns the date of the i-th night of the stay.
func (sr StayRange) NightAt(i int) time.Time {
	return sr.CheckIn.AddDate(0, 0, i)
}
