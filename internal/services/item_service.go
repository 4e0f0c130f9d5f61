package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"listinghub/internal/catalog"
	"listinghub/internal/dto"
	"listinghub/internal/media"
	"listinghub/internal/models"
)

// CategorizedItem pairs an item with its category slug for listings that
// span the per-category tables.
type CategorizedItem struct {
	Category string      `json:"category"`
	Item     models.Item `json:"item"`
}

type ItemService struct {
	db    *gorm.DB
	media media.Store
}

func NewItemService(db *gorm.DB, store media.Store) *ItemService {
	return &ItemService{db: db, media: store}
}

// Create validates the payload against the category schema and inserts the
// item. A moderator or admin creator skips the queue: the item is born
// approved with the creator recorded as the approver.
func (s *ItemService) Create(ctx context.Context, actor *models.User, req *dto.CreateItemRequest, images []*multipart.FileHeader) (*models.Item, *catalog.Category, error) {
	cat, ok := catalog.BySlug(req.Category)
	if !ok {
		return nil, nil, ErrUnknownCategory
	}

	clean, problems := catalog.ValidateNew(cat, req.Fields)
	if problems != nil {
		return nil, nil, dto.NewValidationError(problems)
	}

	item := models.Item{
		Status:          models.StatusPending,
		LastInfoUpdated: time.Now(),
	}
	catalog.PopulateItem(cat, &item, clean)

	if actor.CanModerate() {
		now := time.Now()
		item.Status = models.StatusApproved
		item.ApprovedAt = &now
		item.ApprovedBy = &actor.ID
	}

	if err := s.db.Scopes(cat.Scope()).Create(&item).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create item: %w", err)
	}

	for _, file := range images {
		if _, err := s.media.Attach(ctx, cat.Slug, item.ID, file); err != nil {
			return nil, nil, fmt.Errorf("failed to attach image: %w", err)
		}
	}

	return &item, cat, nil
}

// GetBySlug returns an approved item by its slug, with its attachments.
func (s *ItemService) GetBySlug(categorySlug, itemSlug string) (*models.Item, []models.Attachment, error) {
	cat, ok := catalog.BySlug(categorySlug)
	if !ok {
		return nil, nil, ErrUnknownCategory
	}

	var item models.Item
	err := s.db.Scopes(cat.Scope()).
		Where("slug = ? AND status = ?", itemSlug, models.StatusApproved).
		First(&item).Error
	if err != nil {
		return nil, nil, ErrItemNotFound
	}

	atts, err := s.media.List(cat.Slug, item.ID)
	if err != nil {
		return nil, nil, err
	}
	return &item, atts, nil
}

// List returns approved items of one category with substring search,
// location filters, sorting, and pagination.
func (s *ItemService) List(categorySlug string, q *dto.ListItemsQuery) ([]models.Item, int64, error) {
	cat, ok := catalog.BySlug(categorySlug)
	if !ok {
		return nil, 0, ErrUnknownCategory
	}
	q.Normalize(20, 100)

	query := s.db.Scopes(cat.Scope()).
		Where("status = ?", models.StatusApproved).
		Where("deleted_at IS NULL")

	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if q.Division != "" {
		query = query.Where("division = ?", q.Division)
	}
	if q.District != "" {
		query = query.Where("district = ?", q.District)
	}

	var total int64
	if err := query.Model(&models.Item{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	err := query.Order(sortClause(q.SortBy, q.SortOrder)).
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search runs a cross-category substring search over approved items,
// returning at most five matches per category keyed by category slug.
func (s *ItemService) Search(term string) (map[string][]models.Item, error) {
	results := map[string][]models.Item{}
	if strings.TrimSpace(term) == "" {
		return results, nil
	}
	needle := "%" + strings.ToLower(term) + "%"

	for _, cat := range catalog.All() {
		var items []models.Item
		err := s.db.Scopes(cat.Scope()).
			Where("status = ?", models.StatusApproved).
			Where("deleted_at IS NULL").
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle).
			Order("name ASC").
			Limit(5).
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			results[cat.Slug] = items
		}
	}
	return results, nil
}

// ListForModeration gathers items across the category tables for the
// moderation queue, optionally filtered by status and category.
func (s *ItemService) ListForModeration(status, categorySlug string) ([]CategorizedItem, error) {
	cats := catalog.All()
	if categorySlug != "" {
		cat, ok := catalog.BySlug(categorySlug)
		if !ok {
			return nil, ErrUnknownCategory
		}
		cats = []*catalog.Category{cat}
	}

	var out []CategorizedItem
	for _, cat := range cats {
		query := s.db.Scopes(cat.Scope()).Where("deleted_at IS NULL")
		if status != "" {
			query = query.Where("status = ?", status)
		}

		var items []models.Item
		if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
			return nil, err
		}
		for _, item := range items {
			out = append(out, CategorizedItem{Category: cat.Slug, Item: item})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Item.CreatedAt.After(out[j].Item.CreatedAt)
	})
	return out, nil
}

// Approve moves an item to approved. Re-approving is allowed.
func (s *ItemService) Approve(actor *models.User, categoryTag string, itemID uint) (*models.Item, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}
	cat, item, err := s.find(categoryTag, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Scopes(cat.Scope()).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"status":      models.StatusApproved,
		"approved_at": now,
		"approved_by": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	item.Status = models.StatusApproved
	item.ApprovedAt = &now
	item.ApprovedBy = &actor.ID
	return item, nil
}

// Reject moves an item to rejected. The approver column doubles as the
// record of who last acted, so it is set here too; approved_at is left
// untouched.
func (s *ItemService) Reject(actor *models.User, categoryTag string, itemID uint) (*models.Item, error) {
	if !actor.CanModerate() {
		return nil, ErrPermissionDenied
	}
	cat, item, err := s.find(categoryTag, itemID)
	if err != nil {
		return nil, err
	}

	err = s.db.Scopes(cat.Scope()).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"status":      models.StatusRejected,
		"approved_by": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	item.Status = models.StatusRejected
	item.ApprovedBy = &actor.ID
	return item, nil
}

// Delete tombstones an item. Moderator or admin only.
func (s *ItemService) Delete(actor *models.User, categoryTag string, itemID uint) error {
	if !actor.CanModerate() {
		return ErrPermissionDenied
	}
	cat, item, err := s.find(categoryTag, itemID)
	if err != nil {
		return err
	}
	return s.db.Scopes(cat.Scope()).Delete(&models.Item{}, item.ID).Error
}

// Submissions lists the items a user is recorded against across every
// category table.
func (s *ItemService) Submissions(userID uint) ([]CategorizedItem, error) {
	var out []CategorizedItem
	for _, cat := range catalog.All() {
		var items []models.Item
		err := s.db.Scopes(cat.Scope()).
			Where("approved_by = ?", userID).
			Where("deleted_at IS NULL").
			Order("created_at DESC").
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			out = append(out, CategorizedItem{Category: cat.Slug, Item: item})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Item.CreatedAt.After(out[j].Item.CreatedAt)
	})
	return out, nil
}

func (s *ItemService) find(categoryTag string, itemID uint) (*catalog.Category, *models.Item, error) {
	cat, ok := catalog.ByTag(categoryTag)
	if !ok {
		return nil, nil, ErrUnknownCategory
	}
	var item models.Item
	if err := s.db.Scopes(cat.Scope()).First(&item, itemID).Error; err != nil {
		return nil, nil, ErrItemNotFound
	}
	return cat, &item, nil
}

func sortClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch sortBy {
	case "name":
		column = "name"
	case "last_info_updated":
		column = "last_info_updated"
	case "created_at", "":
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
