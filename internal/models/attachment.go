package models

import "time"

// Attachment records one uploaded image belonging to an item. The bytes
// live in the media backend; this row only keeps the delivery URL and the
// backend's public id so the collection can be cleared.
type Attachment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemType  string    `gorm:"size:50;not null;index:idx_attachments_target" json:"-"`
	ItemID    uint      `gorm:"not null;index:idx_attachments_target" json:"-"`
	PublicID  string    `gorm:"size:255;not null" json:"-"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	FileName  string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
