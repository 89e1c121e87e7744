package models

import "time"

// Review targets a site, a hotel, or both. Neither reference is mandatory.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SiteID    *uint     `gorm:"index" json:"site_id"`
	HotelID   *uint     `gorm:"index" json:"hotel_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Review) OwnerID() uint { return r.UserID }
