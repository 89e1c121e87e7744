package models

import (
	"time"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FullName       string     `gorm:"size:255" json:"full_name"`
	PasswordHash   string     `gorm:"not null" json:"-"`
	ProfilePicture *string    `gorm:"size:500" json:"profile_picture"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth"`
	Role           Role       `gorm:"size:20;not null;index" json:"role"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OwnerID makes a user the owner of its own profile.
func (u User) OwnerID() uint { return u.ID }

func (u User) IsAdmin() bool { return u.Role.AtLeast(RoleAdmin) }

func (u User) IsSuperuser() bool { return u.Role == RoleSuperuser }
