package models

import "time"

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_site" json:"user_id"`
	SiteID    uint      `gorm:"not null;uniqueIndex:idx_user_site;index" json:"site_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (f Favorite) OwnerID() uint { return f.UserID }
