package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"listinghub/internal/catalog"
	"listinghub/internal/models"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// Rate records a user's 1-5 score for a target with upsert semantics:
// re-rating overwrites the existing row, never adds one.
func (s *RatingService) Rate(actor *models.User, itemType string, itemID uint, value int) (*models.Rating, error) {
	cat, ok := catalog.ByTag(itemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, itemID).Error; err != nil {
		return nil, ErrItemNotFound
	}

	var rating models.Rating
	err := s.db.Where("user_id = ? AND item_type = ? AND item_id = ? AND is_moderator_rating = false",
		actor.ID, cat.Slug, item.ID).First(&rating).Error
	if err == nil {
		if err := s.db.Model(&rating).Update("rating", value).Error; err != nil {
			return nil, err
		}
		rating.Rating = value
		return &rating, nil
	}

	rating = models.Rating{
		UserID:   &actor.ID,
		ItemType: cat.Slug,
		ItemID:   item.ID,
		Rating:   value,
	}
	if err := s.db.Create(&rating).Error; err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}
	return &rating, nil
}

// SetModeratorRating records the single official rating for a target. The
// row has no user; re-rating overwrites it.
func (s *RatingService) SetModeratorRating(actor *models.User, itemType string, itemID uint, value int) (*models.Rating, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}

	cat, ok := catalog.ByTag(itemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, itemID).Error; err != nil {
		return nil, ErrItemNotFound
	}

	var rating models.Rating
	err := s.db.Where("item_type = ? AND item_id = ? AND is_moderator_rating = true", cat.Slug, item.ID).
		First(&rating).Error
	if err == nil {
		if err := s.db.Model(&rating).Update("rating", value).Error; err != nil {
			return nil, err
		}
		rating.Rating = value
		return &rating, nil
	}

	rating = models.Rating{
		ItemType:          cat.Slug,
		ItemID:            item.ID,
		Rating:            value,
		IsModeratorRating: true,
	}
	if err := s.db.Create(&rating).Error; err != nil {
		return nil, fmt.Errorf("failed to create moderator rating: %w", err)
	}
	return &rating, nil
}

// UserRating returns the actor's personal rating for a target, if any.
func (s *RatingService) UserRating(userID uint, itemType string, itemID uint) (*models.Rating, error) {
	cat, ok := catalog.ByTag(itemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var rating models.Rating
	err := s.db.Where("user_id = ? AND item_type = ? AND item_id = ? AND is_moderator_rating = false",
		userID, cat.Slug, itemID).First(&rating).Error
	if err != nil {
		return nil, ErrRatingNotFound
	}
	return &rating, nil
}

// Summary computes the aggregate view for a target fresh on every call:
// mean of personal ratings rounded to two decimals, total count, a 1..5
// distribution, and the official moderator rating when one exists.
func (s *RatingService) Summary(itemType string, itemID uint) (*models.RatingSummary, error) {
	cat, ok := catalog.ByTag(itemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var ratings []models.Rating
	err := s.db.Where("item_type = ? AND item_id = ? AND is_moderator_rating = false", cat.Slug, itemID).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	summary := &models.RatingSummary{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		summary.Distribution[r.Rating]++
	}
	summary.TotalRatings = int64(len(ratings))
	if len(ratings) > 0 {
		avg := float64(sum) / float64(len(ratings))
		summary.AverageRating = math.Round(avg*100) / 100
	}

	var moderator models.Rating
	err = s.db.Where("item_type = ? AND item_id = ? AND is_moderator_rating = true", cat.Slug, itemID).
		First(&moderator).Error
	if err == nil {
		value := moderator.Rating
		summary.ModeratorRating = &value
	}

	return summary, nil
}

// Delete removes the actor's own rating.
func (s *RatingService) Delete(actor *models.User, ratingID uint) error {
	var rating models.Rating
	if err := s.db.First(&rating, ratingID).Error; err != nil {
		return ErrRatingNotFound
	}
	if rating.UserID == nil || *rating.UserID != actor.ID {
		return ErrPermissionDenied
	}
	return s.db.Delete(&rating).Error
}

// ListByUser returns a user's personal ratings newest first.
func (s *RatingService) ListByUser(userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.Where("user_id = ? AND is_moderator_rating = false", userID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
