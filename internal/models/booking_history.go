package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingEvent string

const (
	BookingEventCreated BookingEvent = "created"
	BookingEventUpdated BookingEvent = "updated"
)

// BookingHistory is an immutable snapshot of a booking taken on every write.
type BookingHistory struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	BookingID    uint            `gorm:"not null;index" json:"booking_id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	ChangedByID  uint            `gorm:"not null" json:"changed_by_id"`
	Event        BookingEvent    `gorm:"size:20;not null" json:"event"`
	HotelID      uint            `gorm:"not null" json:"hotel_id"`
	CheckInDate  time.Time       `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate time.Time       `gorm:"type:date;not null" json:"check_out_date"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	Status       BookingStatus   `gorm:"size:20;not null" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (h BookingHistory) OwnerID() uint { return h.UserID }

// Snapshot records the current state of b as changed by actorID.
func (b Booking) Snapshot(event BookingEvent, actorID uint) BookingHistory {
	return BookingHistory{
		BookingID:    b.ID,
		UserID:       b.UserID,
		ChangedByID:  actorID,
		Event:        event,
		HotelID:      b.HotelID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		TotalCost:    b.TotalCost,
		Status:       b.Status,
	}
}
