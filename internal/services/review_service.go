package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"listinghub/internal/catalog"
	"listinghub/internal/dto"
	"listinghub/internal/models"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create posts a review. Current policy auto-approves every review at
// creation; the status enum is kept for data that may pre-date it. A reply
// must point at a review on the same target.
func (s *ReviewService) Create(actor *models.User, req *dto.CreateReviewRequest) (*models.Review, error) {
	cat, ok := catalog.ByTag(req.ItemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, req.ItemID).Error; err != nil {
		return nil, ErrItemNotFound
	}

	if req.ParentID != nil {
		var parent models.Review
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			return nil, ErrReviewNotFound
		}
		if parent.ItemType != cat.Slug || parent.ItemID != item.ID {
			return nil, dto.NewValidationError(map[string]string{
				"parent_id": "parent review belongs to a different item",
			})
		}
	}

	now := time.Now()
	review := models.Review{
		UserID:     actor.ID,
		ItemType:   cat.Slug,
		ItemID:     item.ID,
		Comment:    req.Comment,
		Status:     models.StatusApproved,
		ApprovedAt: &now,
		ApprovedBy: &actor.ID,
		ParentID:   req.ParentID,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// Update edits a review's comment. Owner only.
func (s *ReviewService) Update(actor *models.User, reviewID uint, req *dto.UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}

	if err := s.db.Model(&review).Update("comment", req.Comment).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete soft deletes a review. Allowed for the owner or any moderator.
func (s *ReviewService) Delete(actor *models.User, reviewID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return ErrReviewNotFound
	}
	if review.UserID != actor.ID && !actor.CanModerate() {
		return ErrPermissionDenied
	}
	return s.db.Delete(&review).Error
}

// ListForItem returns approved top-level reviews for a target, newest
// first, each carrying its direct replies. Every review and reply is
// annotated with its author's personal rating of the same target.
func (s *ReviewService) ListForItem(q *dto.ReviewListQuery) ([]models.Review, int64, error) {
	cat, ok := catalog.ByTag(q.ItemType)
	if !ok {
		return nil, 0, ErrUnknownCategory
	}
	q.Normalize(10, 50)

	base := s.db.Model(&models.Review{}).
		Where("item_type = ? AND item_id = ?", cat.Slug, q.ItemID).
		Where("status = ?", models.StatusApproved).
		Where("parent_id IS NULL")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := base.Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusApproved).Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachUserRatings(cat.Slug, q.ItemID, reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// attachUserRatings looks up each author's personal rating of the target
// and sets it on the in-memory review rows.
func (s *ReviewService) attachUserRatings(itemType string, itemID uint, reviews []models.Review) error {
	userIDs := map[uint]struct{}{}
	for i := range reviews {
		userIDs[reviews[i].UserID] = struct{}{}
		for j := range reviews[i].Replies {
			userIDs[reviews[i].Replies[j].UserID] = struct{}{}
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(userIDs))
	for id := range userIDs {
		ids = append(ids, id)
	}

	var ratings []models.Rating
	err := s.db.Where("item_type = ? AND item_id = ? AND is_moderator_rating = false", itemType, itemID).
		Where("user_id IN ?", ids).
		Find(&ratings).Error
	if err != nil {
		return err
	}

	byUser := map[uint]int{}
	for _, r := range ratings {
		if r.UserID != nil {
			byUser[*r.UserID] = r.Rating
		}
	}

	for i := range reviews {
		if v, ok := byUser[reviews[i].UserID]; ok {
			value := v
			reviews[i].UserRating = &value
		}
		for j := range reviews[i].Replies {
			if v, ok := byUser[reviews[i].Replies[j].UserID]; ok {
				value := v
				reviews[i].Replies[j].UserRating = &value
			}
		}
	}
	return nil
}

// ListByUser returns a user's own reviews newest first.
func (s *ReviewService) ListByUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListForModeration returns reviews for the admin panel, optionally
// filtered by status.
func (s *ReviewService) ListForModeration(status string, page *dto.PageQuery) ([]models.Review, int64, error) {
	page.Normalize(20, 100)

	query := s.db.Model(&models.Review{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(page.PerPage).Offset(page.Offset()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ApproveReview re-approves a review from the admin panel.
func (s *ReviewService) ApproveReview(actor *models.User, reviewID uint) (*models.Review, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}

	now := time.Now()
	err := s.db.Model(&review).Updates(map[string]interface{}{
		"status":      models.StatusApproved,
		"approved_at": now,
		"approved_by": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// RejectReview marks a review rejected, recording the actor in the shared
// approver column.
func (s *ReviewService) RejectReview(actor *models.User, reviewID uint) (*models.Review, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}

	err := s.db.Model(&review).Updates(map[string]interface{}{
		"status":      models.StatusRejected,
		"approved_by": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Report flags a review for moderator attention. One open report per
// (review, user); the duplicate check is by query, so it is best-effort
// under concurrency.
func (s *ReviewService) Report(actor *models.User, reviewID uint) (*models.ReviewReport, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}

	var existing models.ReviewReport
	err := s.db.Where("review_id = ? AND user_id = ? AND status = ?", reviewID, actor.ID, models.ReportPending).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyReported
	}

	report := models.ReviewReport{
		ReviewID: reviewID,
		UserID:   actor.ID,
		Status:   models.ReportPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ListReports returns reports for the admin panel, optionally filtered by
// status, with the reported review and reporter preloaded.
func (s *ReviewService) ListReports(status string, page *dto.PageQuery) ([]models.ReviewReport, int64, error) {
	page.Normalize(20, 100)

	query := s.db.Model(&models.ReviewReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.ReviewReport
	err := query.Preload("Review").Preload("Review.User").Preload("User").
		Order("created_at DESC").
		Limit(page.PerPage).Offset(page.Offset()).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// ResolveReport closes a report. "dismiss" leaves the review alone;
// "delete" removes the review (if it still exists) and marks the report
// reviewed either way. Review deletion and report closure are atomic.
func (s *ReviewService) ResolveReport(actor *models.User, reportID uint, action string) (*models.ReviewReport, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}

	var report models.ReviewReport
	if err := s.db.First(&report, reportID).Error; err != nil {
		return nil, ErrReportNotFound
	}

	now := time.Now()
	status := models.ReportDismissed
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if action == "delete" {
			status = models.ReportReviewed
			var review models.Review
			if err := tx.First(&review, report.ReviewID).Error; err == nil {
				if err := tx.Delete(&review).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&report).Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": now,
			"reviewed_by": actor.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	report.Status = status
	return &report, nil
}
