package models

import (
	"time"

	"gorm.io/gorm"
)

// Item statuses. Approved and rejected are terminal only for automatic
// transitions; moderators may re-issue either transition at will.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Item is the shared row shape of every listable category. Each category
// stores its rows in its own table (selected via catalog.Category.Scope),
// with category-specific schema fields kept in Attributes.
type Item struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Phone       string `gorm:"size:255" json:"phone,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Website     string `gorm:"size:255" json:"website,omitempty"`
	FacebookURL string `gorm:"size:255" json:"facebook_url,omitempty"`

	Division  string   `gorm:"size:255;index" json:"division,omitempty"`
	District  string   `gorm:"size:255;index" json:"district,omitempty"`
	Area      string   `gorm:"size:255" json:"area,omitempty"`
	Address   string   `gorm:"type:text" json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Attributes AttributeMap `json:"attributes,omitempty"`

	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt      *time.Time `json:"approved_at"`
	ApprovedBy      *uint      `json:"approved_by"`
	LastInfoUpdated time.Time  `json:"last_info_updated"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Item) IsApproved() bool { return i.Status == StatusApproved }
