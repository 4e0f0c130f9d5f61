package models

import "time"

// Rating is a 1-5 score attached polymorphically to an item. A user has
// at most one personal rating per target (upsert semantics); each target
// additionally carries at most one moderator rating, which has no user.
type Rating struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            *uint     `gorm:"index:idx_ratings_target,unique" json:"user_id"`
	ItemType          string    `gorm:"size:50;not null;index:idx_ratings_target,unique" json:"item_type"`
	ItemID            uint      `gorm:"not null;index:idx_ratings_target,unique" json:"item_id"`
	Rating            int       `gorm:"not null" json:"rating"`
	IsModeratorRating bool      `gorm:"default:false;index:idx_ratings_target,unique" json:"is_moderator_rating"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// RatingSummary is computed fresh on every read; aggregates are not
// maintained incrementally.
type RatingSummary struct {
	AverageRating   float64     `json:"average_rating"`
	TotalRatings    int64       `json:"total_ratings"`
	ModeratorRating *int        `json:"moderator_rating"`
	Distribution    map[int]int `json:"distribution"`
}
