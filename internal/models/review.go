package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a polymorphic attachment to any item, addressed by category
// tag + item id. A non-null ParentID makes it a single-level reply; the
// write path guarantees parent and reply target the same item.
type Review struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	ItemType   string         `gorm:"size:50;not null;index:idx_reviews_target" json:"item_type"`
	ItemID     uint           `gorm:"not null;index:idx_reviews_target" json:"item_id"`
	Comment    string         `gorm:"type:text;not null" json:"comment"`
	Status     string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy *uint          `json:"approved_by,omitempty"`
	ParentID   *uint          `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []Review `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	// UserRating is the author's personal rating of the same target,
	// attached on read for display next to the review.
	UserRating *int `gorm:"-" json:"user_rating,omitempty"`
}
