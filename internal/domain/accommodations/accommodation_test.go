package accommodations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateParams() CreateParams {
	return CreateParams{
		ID:        "acc-1",
		Host:      "host-1",
		Name:      "  Harbour house  ",
		Location:  " Rovinj ",
		MinGuests: 2,
		MaxGuests: 6,
		BasePrice: 200,
		Now:       time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	acc, err := New(validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, "Harbour house", acc.Name)
	assert.Equal(t, "Rovinj", acc.Location)
	assert.NotNil(t, acc.PhotoKeys)
	require.Len(t, acc.PendingEvents(), 1)
	assert.Equal(t, "accommodation.created", acc.PendingEvents()[0].EventName())
}

func TestNewValidation(t *testing.T) {
	params := validCreateParams()
	params.Name = ""
	_, err := New(params)
	assert.ErrorIs(t, err, ErrNameRequired)

	params = validCreateParams()
	params.Location = "   "
	_, err = New(params)
	assert.ErrorIs(t, err, ErrLocation)

	params = validCreateParams()
	params.MinGuests = 0
	_, err = New(params)
	assert.ErrorIs(t, err, ErrGuestMinimum)

	params = validCreateParams()
	params.MinGuests = 7
	_, err = New(params)
	assert.ErrorIs(t, err, ErrGuestBounds)

	params = validCreateParams()
	params.BasePrice = -0.01
	_, err = New(params)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestFitsGuests(t *testing.T) {
	acc, err := New(validCreateParams())
	require.NoError(t, err)
	assert.False(t, acc.FitsGuests(1))
	assert.True(t, acc.FitsGuests(2))
	assert.True(t, acc.FitsGuests(6))
	assert.False(t, acc.FitsGuests(7))
}

func TestSearchParamsNormalized(t *testing.T) {
	params := SearchParams{Location: "  SpLiT ", Guests: -3, Page: 0, PageSize: 500}.Normalized()
	assert.Equal(t, "split", params.Location)
	assert.Equal(t, 0, params.Guests)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.PageSize)

	params = SearchParams{}.Normalized()
	assert.Equal(t, 20, params.PageSize)
}

func TestSearchParamsDropIncompleteStay(t *testing.T) {
	checkIn := time.Date(2026, 7, 5, 10, 0, 0, 0, time.UTC)

	params := SearchParams{CheckIn: checkIn, CheckOut: checkIn}.Normalized()
	assert.False(t, params.HasStay())

	params = SearchParams{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2)}.Normalized()
	assert.True(t, params.HasStay())
	assert.Equal(t, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC), params.CheckIn)
}
