package models

import (
	"time"

	"gorm.io/datatypes"
)

type TouristSite struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"size:255;not null" json:"name"`
	Description    string                      `gorm:"type:text" json:"description"`
	History        string                      `gorm:"type:text" json:"history"`
	RegionOrCity   string                      `gorm:"size:150;index" json:"region_or_city"`
	GPSCoordinates *string                     `gorm:"size:200" json:"gps_coordinates"`
	OpeningHours   string                      `gorm:"size:150" json:"opening_hours"`
	Images         datatypes.JSONSlice[string] `json:"images"` // ordered image URLs
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}
