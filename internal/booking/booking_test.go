package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateAndPrice(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		price    string
		want     string
	}{
		{"three nights", "2024-01-01", "2024-01-04", "100.00", "300.00"},
		{"one night", "2024-03-10", "2024-03-11", "89.99", "89.99"},
		{"cents stay exact", "2024-01-01", "2024-01-11", "0.10", "1.00"},
		{"leap day crossing", "2024-02-28", "2024-03-01", "120.50", "241.00"},
		{"free stay", "2024-05-01", "2024-05-03", "0", "0"},
		{"stay longer than a duration can hold", "2024-01-01", "2400-01-01", "1", "137331"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAndPrice(day(tt.checkIn), day(tt.checkOut), decimal.RequireFromString(tt.price))
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestValidateAndPrice_InvalidRange(t *testing.T) {
	price := decimal.NewFromInt(100)

	for _, r := range [][2]string{
		{"2024-02-01", "2024-02-01"},
		{"2024-02-05", "2024-02-01"},
	} {
		_, err := ValidateAndPrice(day(r[0]), day(r[1]), price)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}
}

func TestValidateAndPrice_NegativePrice(t *testing.T) {
	_, err := ValidateAndPrice(day("2024-01-01"), day("2024-01-02"), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestValidateAndPrice_CostTooLarge(t *testing.T) {
	_, err := ValidateAndPrice(day("2024-01-01"), day("2025-01-01"), decimal.NewFromInt(1_000_000))
	assert.ErrorIs(t, err, ErrCostTooLarge)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := ValidateAndPrice(day("2024-01-01"), day("2024-01-02"), decimal.RequireFromString("99999999.99"))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("99999999.99")))
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	in := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	out := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	assert.EqualValues(t, 1, Nights(in, out))

	sameDay := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	assert.EqualValues(t, 0, Nights(sameDay, sameDay.Add(10*time.Hour)))
}

func TestPrepare(t *testing.T) {
	hotel := models.Hotel{ID: 7, PricePerNight: decimal.RequireFromString("100.00")}
	b := &models.Booking{
		CheckInDate:  time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		CheckOutDate: day("2024-01-04"),
		TotalCost:    decimal.NewFromInt(1),
	}

	require.NoError(t, Prepare(b, hotel))
	assert.Equal(t, uint(7), b.HotelID)
	assert.Equal(t, day("2024-01-01"), b.CheckInDate)
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(300)))

	// a second pass over unchanged data gives the same cost
	require.NoError(t, Prepare(b, hotel))
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(300)))
}

func TestPrepare_InvalidRangeLeavesCostUntouched(t *testing.T) {
	b := &models.Booking{
		CheckInDate:  day("2024-02-01"),
		CheckOutDate: day("2024-02-01"),
		TotalCost:    decimal.NewFromInt(42),
	}
	err := Prepare(b, models.Hotel{PricePerNight: decimal.NewFromInt(100)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(42)))
}

func TestTransition(t *testing.T) {
	allowed := [][2]models.BookingStatus{
		{models.BookingPending, models.BookingConfirmed},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingCancelled},
		{models.BookingPending, models.BookingPending},
		{models.BookingCancelled, models.BookingCancelled},
	}
	for _, tr := range allowed {
		assert.NoError(t, Transition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]models.BookingStatus{
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingCancelled, models.BookingPending},
		{models.BookingConfirmed, models.BookingPending},
	}
	for _, tr := range denied {
		assert.ErrorIs(t, Transition(tr[0], tr[1]), ErrInvalidTransition, "%s -> %s", tr[0], tr[1])
	}

	assert.ErrorIs(t, Transition(models.BookingPending, "settled"), ErrInvalidStatus)
}
