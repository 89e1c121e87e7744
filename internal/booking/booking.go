// Package booking prices stays and guards booking status changes.
package booking

import (
	"time"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateRange  = apperr.New(apperr.Validation, "check_out_date must be after check_in_date")
	ErrNegativePrice     = apperr.New(apperr.Validation, "price_per_night must not be negative")
	ErrInvalidStatus     = apperr.New(apperr.Validation, "invalid booking status")
	ErrInvalidTransition = apperr.New(apperr.Validation, "invalid booking status transition")
	ErrHotelUnavailable  = apperr.New(apperr.Validation, "hotel is not available for booking")
	ErrCostTooLarge      = apperr.New(apperr.Validation, "total_cost exceeds the largest storable amount")
)

// MaxTotalCost is the first amount that no longer fits the decimal(10,2)
// total_cost column.
var MaxTotalCost = decimal.New(1, 8)

const secondsPerDay = 24 * 60 * 60

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts the whole calendar days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int64 {
	return (Date(checkOut).Unix() - Date(checkIn).Unix()) / secondsPerDay
}

// ValidateAndPrice returns pricePerNight multiplied by the number of nights.
func ValidateAndPrice(checkIn, checkOut time.Time, pricePerNight decimal.Decimal) (decimal.Decimal, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return decimal.Zero, ErrInvalidDateRange
	}
	if pricePerNight.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	cost := pricePerNight.Mul(decimal.NewFromInt(nights))
	if cost.GreaterThanOrEqual(MaxTotalCost) {
		return decimal.Zero, ErrCostTooLarge
	}
	return cost, nil
}

// Prepare normalizes the stay dates of b and stamps the total cost derived
// from hotel. It must run before every write of a booking.
func Prepare(b *models.Booking, hotel models.Hotel) error {
	b.CheckInDate = Date(b.CheckInDate)
	b.CheckOutDate = Date(b.CheckOutDate)

	cost, err := ValidateAndPrice(b.CheckInDate, b.CheckOutDate, hotel.PricePerNight)
	if err != nil {
		return err
	}
	b.HotelID = hotel.ID
	b.TotalCost = cost
	return nil
}
