package models

import (
	"time"

	"gorm.io/datatypes"
)

// Sentinel keys recorded in proposed data when a regular user submits
// images alongside an update. They flag that images were pending and are
// never applied as item fields.
const (
	KeyHasNewImages   = "has_new_images"
	KeyNewImagesCount = "new_images_count"
)

// UpdateRequest captures a proposed partial-field diff against an item.
// CurrentData is a full snapshot taken at submission time, kept only for
// the moderation diff view; it is never replayed. ProposedData is stored
// verbatim and allowlist-filtered at apply time, not at submission time.
type UpdateRequest struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	ItemType     string            `gorm:"size:50;not null;index:idx_update_requests_target" json:"item_type"`
	ItemID       uint              `gorm:"not null;index:idx_update_requests_target" json:"item_id"`
	CurrentData  datatypes.JSON    `json:"current_data,omitempty"`
	ProposedData datatypes.JSONMap `json:"proposed_data"`
	Status       string            `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNotes   string            `gorm:"type:text" json:"admin_notes,omitempty"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy   *uint             `json:"reviewed_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
