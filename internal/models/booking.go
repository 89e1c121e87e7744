package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking dates are calendar dates stored as UTC midnight.
// TotalCost is derived from the hotel price on every write.
type Booking struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	HotelID      uint            `gorm:"not null;index" json:"hotel_id"`
	CheckInDate  time.Time       `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate time.Time       `gorm:"type:date;not null" json:"check_out_date"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	Status       BookingStatus   `gorm:"size:20;not null;index" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (b Booking) OwnerID() uint { return b.UserID }
