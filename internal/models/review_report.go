package models

import "time"

// Report statuses. "reviewed" means a moderator deleted the offending
// review; "dismissed" means no action was taken.
const (
	ReportPending   = "pending"
	ReportDismissed = "dismissed"
	ReportReviewed  = "reviewed"
)

// ReviewReport flags a review for moderator attention. At most one open
// report per (review, user) pair is allowed; the write path enforces it
// by query, which is best-effort under concurrency.
type ReviewReport struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ReviewID   uint       `gorm:"not null;index" json:"review_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Status     string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Review *Review `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
