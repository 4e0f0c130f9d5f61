package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"listinghub/internal/catalog"
	"listinghub/internal/dto"
	"listinghub/internal/media"
	"listinghub/internal/models"
)

// SubmitResult reports how a submitted diff was handled: applied on the
// spot by a privileged actor, or queued as a pending request.
type SubmitResult struct {
	AutoApproved bool                  `json:"auto_approved"`
	Request      *models.UpdateRequest `json:"request,omitempty"`
	Item         *models.Item          `json:"item,omitempty"`
}

type UpdateService struct {
	db    *gorm.DB
	media media.Store
}

func NewUpdateService(db *gorm.DB, store media.Store) *UpdateService {
	return &UpdateService{db: db, media: store}
}

// Submit proposes a partial-field change to an item. Moderators and admins
// bypass the queue entirely: the allowlisted fields are merged into the
// live item immediately and any images replace the existing collection.
// Regular users get a pending UpdateRequest holding a full snapshot for the
// diff view plus the proposed fields verbatim; their image uploads are only
// recorded as a count, not persisted.
func (s *UpdateService) Submit(ctx context.Context, actor *models.User, req *dto.SubmitUpdateRequest, images []*multipart.FileHeader) (*SubmitResult, error) {
	cat, ok := catalog.ByTag(req.ItemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, req.ItemID).Error; err != nil {
		return nil, ErrItemNotFound
	}

	if actor.CanModerate() {
		catalog.ApplyProposed(cat, &item, req.ProposedData)
		item.LastInfoUpdated = time.Now()
		if err := s.db.Scopes(cat.Scope()).Where("id = ?", item.ID).Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to apply update: %w", err)
		}

		if len(images) > 0 {
			if err := s.media.Clear(cat.Slug, item.ID); err != nil {
				return nil, fmt.Errorf("failed to clear images: %w", err)
			}
			for _, file := range images {
				if _, err := s.media.Attach(ctx, cat.Slug, item.ID, file); err != nil {
					return nil, fmt.Errorf("failed to attach image: %w", err)
				}
			}
		}

		return &SubmitResult{AutoApproved: true, Item: &item}, nil
	}

	snapshot, err := json.Marshal(&item)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot item: %w", err)
	}

	proposed := datatypes.JSONMap{}
	for k, v := range req.ProposedData {
		proposed[k] = v
	}
	if len(images) > 0 {
		proposed[models.KeyHasNewImages] = true
		proposed[models.KeyNewImagesCount] = len(images)
	}

	request := models.UpdateRequest{
		UserID:       actor.ID,
		ItemType:     cat.Slug,
		ItemID:       item.ID,
		CurrentData:  datatypes.JSON(snapshot),
		ProposedData: proposed,
		Status:       models.StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create update request: %w", err)
	}

	return &SubmitResult{AutoApproved: false, Request: &request}, nil
}

// Approve merges a pending request's allowlisted fields into the live item
// and marks the request approved, atomically. If the target item vanished
// the request is left untouched so a human can still reject it.
func (s *UpdateService) Approve(actor *models.User, requestID uint) (*models.UpdateRequest, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}

	var request models.UpdateRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}

	cat, ok := catalog.ByTag(request.ItemType)
	if !ok {
		return nil, ErrUnknownCategory
	}

	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, request.ItemID).Error; err != nil {
		return nil, ErrItemNotFound
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		catalog.ApplyProposed(cat, &item, request.ProposedData)
		item.LastInfoUpdated = now
		if err := tx.Scopes(cat.Scope()).Where("id = ?", item.ID).Save(&item).Error; err != nil {
			return fmt.Errorf("failed to apply update: %w", err)
		}

		return tx.Model(&request).Updates(map[string]interface{}{
			"status":      models.StatusApproved,
			"reviewed_at": now,
			"reviewed_by": actor.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Reject closes a request without touching the item.
func (s *UpdateService) Reject(actor *models.User, requestID uint, notes string) (*models.UpdateRequest, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}

	var request models.UpdateRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}

	now := time.Now()
	err := s.db.Model(&request).Updates(map[string]interface{}{
		"status":      models.StatusRejected,
		"admin_notes": notes,
		"reviewed_at": now,
		"reviewed_by": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns update requests newest first with their submitting user,
// optionally filtered by status.
func (s *UpdateService) List(q *dto.UpdateListQuery) ([]models.UpdateRequest, int64, error) {
	q.Normalize(20, 100)

	query := s.db.Model(&models.UpdateRequest{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.UpdateRequest
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByUser returns a user's own requests newest first.
func (s *UpdateService) ListByUser(userID uint) ([]models.UpdateRequest, error) {
	var requests []models.UpdateRequest
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
