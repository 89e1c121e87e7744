package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Hotel struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	SiteID           uint                        `gorm:"not null;index" json:"site_id"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Description      string                      `gorm:"type:text" json:"description"`
	PricePerNight    decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	DistanceFromSite decimal.Decimal             `gorm:"type:decimal(5,2);not null" json:"distance_from_site"`
	Address          string                      `gorm:"size:255" json:"address"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	Availability     bool                        `gorm:"not null;index" json:"availability"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}
