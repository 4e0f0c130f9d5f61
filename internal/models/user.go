package models

import (
	"time"

	"gorm.io/gorm"
)

// User carries two independent role flags rather than an exclusive role
// enum: a user can be moderator and admin at the same time, and most
// permission checks only care about the OR of the two.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	IsModerator bool           `gorm:"default:false" json:"is_moderator"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	ReviewsCount int64 `gorm:"-" json:"reviews_count,omitempty"`
	RatingsCount int64 `gorm:"-" json:"ratings_count,omitempty"`
}

// CanModerate is the effective-permission predicate used by every
// moderation path.
func (u *User) CanModerate() bool {
	return u.IsModerator || u.IsAdmin
}
