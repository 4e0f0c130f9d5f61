package services

import (
	"strings"

	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns users for the admin panel with their review and rating
// counts, optionally filtered by a name/email substring.
func (s *UserService) List(q *dto.UserListQuery) ([]models.User, int64, error) {
	q.Normalize(20, 100)

	query := s.db.Model(&models.User{})
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range users {
		s.db.Model(&models.Review{}).Where("user_id = ?", users[i].ID).Count(&users[i].ReviewsCount)
		s.db.Model(&models.Rating{}).Where("user_id = ?", users[i].ID).Count(&users[i].RatingsCount)
	}
	return users, total, nil
}

// UpdateRole flips a user's role flags. An actor can never change their
// own role. Clearing is_admin without an explicit is_moderator value also
// clears is_moderator.
func (s *UserService) UpdateRole(actor *models.User, userID uint, req *dto.UpdateRoleRequest) (*models.User, error) {
	if actor.ID == userID {
		return nil, ErrSelfRoleChange
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
		if !*req.IsAdmin && req.IsModerator == nil {
			updates["is_moderator"] = false
		}
	}
	if req.IsModerator != nil {
		updates["is_moderator"] = *req.IsModerator
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Delete removes a user account. Self-deletion is never allowed, and only
// an admin may delete another admin.
func (s *UserService) Delete(actor *models.User, userID uint) error {
	if actor.ID == userID {
		return ErrSelfDelete
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	if user.IsAdmin && !actor.IsAdmin {
		return ErrAdminProtected
	}

	return s.db.Delete(&user).Error
}

// UserActivity is the per-user dashboard payload: counters plus the most
// recent contributions.
type UserActivity struct {
	ReviewsCount   int64                  `json:"reviews_count"`
	RatingsCount   int64                  `json:"ratings_count"`
	PendingUpdates int64                  `json:"pending_updates"`
	RecentReviews  []models.Review        `json:"recent_reviews"`
	RecentRatings  []models.Rating        `json:"recent_ratings"`
	RecentRequests []models.UpdateRequest `json:"recent_requests"`
}

// Activity gathers a user's contribution counters and recent activity.
func (s *UserService) Activity(userID uint) (*UserActivity, error) {
	activity := &UserActivity{}

	if err := s.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&activity.ReviewsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Rating{}).
		Where("user_id = ? AND is_moderator_rating = false", userID).
		Count(&activity.RatingsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.UpdateRequest{}).
		Where("user_id = ? AND status = ?", userID, models.StatusPending).
		Count(&activity.PendingUpdates).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(5).
		Find(&activity.RecentReviews).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("user_id = ? AND is_moderator_rating = false", userID).
		Order("created_at DESC").Limit(5).
		Find(&activity.RecentRatings).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(5).
		Find(&activity.RecentRequests).Error; err != nil {
		return nil, err
	}

	return activity, nil
}

// Stats returns the admin-panel user counters.
func (s *UserService) Stats() (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_moderator = true").Count(&stats.TotalModerators).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_admin = true").Count(&stats.TotalAdmins).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_active = true").Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
