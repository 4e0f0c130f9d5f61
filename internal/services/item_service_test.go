package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listinghub/internal/dto"
	"listinghub/internal/models"
)

func TestItemService_CreateRegularUserPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	user := seedUser(t, db, "user@example.com", false, false)

	item, cat, err := svc.Create(context.Background(), user, &dto.CreateItemRequest{
		Category: "products",
		Fields: map[string]interface{}{
			"name":  "Phone",
			"slug":  "phone",
			"price": 199.99,
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "products", cat.Slug)
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Nil(t, item.ApprovedAt)
	assert.Nil(t, item.ApprovedBy)
	assert.Equal(t, 199.99, item.Attributes["price"])
}

func TestItemService_NumericAttributesSurviveReload(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	user := seedUser(t, db, "user@example.com", false, false)

	item, cat, err := svc.Create(context.Background(), user, &dto.CreateItemRequest{
		Category: "products",
		Fields: map[string]interface{}{
			"name":            "Phone",
			"slug":            "phone",
			"price":           250,
			"manufacturer_id": 7,
		},
	}, nil)
	require.NoError(t, err)

	var stored models.Item
	require.NoError(t, db.Scopes(cat.Scope()).First(&stored, item.ID).Error)
	require.IsType(t, float64(0), stored.Attributes["price"])
	require.IsType(t, float64(0), stored.Attributes["manufacturer_id"])
	assert.Equal(t, item.Attributes["price"], stored.Attributes["price"])
	assert.Equal(t, item.Attributes["manufacturer_id"], stored.Attributes["manufacturer_id"])
	assert.EqualValues(t, 250, stored.Attributes["price"])
	assert.EqualValues(t, 7, stored.Attributes["manufacturer_id"])
}

func TestItemService_CreateModeratorAutoApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	mod := seedUser(t, db, "mod@example.com", true, false)

	item, _, err := svc.Create(context.Background(), mod, &dto.CreateItemRequest{
		Category: "products",
		Fields: map[string]interface{}{
			"name": "Phone",
			"slug": "phone",
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, item.Status)
	require.NotNil(t, item.ApprovedAt)
	require.NotNil(t, item.ApprovedBy)
	assert.Equal(t, mod.ID, *item.ApprovedBy)
}

func TestItemService_CreateMissingRequiredField(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	user := seedUser(t, db, "user@example.com", false, false)

	_, _, err := svc.Create(context.Background(), user, &dto.CreateItemRequest{
		Category: "products",
		Fields:   map[string]interface{}{"name": "Phone"},
	}, nil)
	require.Error(t, err)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestItemService_CreateUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	user := seedUser(t, db, "user@example.com", false, false)

	_, _, err := svc.Create(context.Background(), user, &dto.CreateItemRequest{
		Category: "starships",
		Fields:   map[string]interface{}{"name": "X"},
	}, nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestItemService_CreateAttachesImages(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{}
	svc := NewItemService(db, media)
	user := seedUser(t, db, "user@example.com", false, false)

	item, _, err := svc.Create(context.Background(), user, &dto.CreateItemRequest{
		Category: "hotels",
		Fields:   map[string]interface{}{"name": "Grand", "slug": "grand"},
	}, []*multipart.FileHeader{fileHeader("front.jpg"), fileHeader("lobby.jpg")})
	require.NoError(t, err)

	atts, err := media.List("hotels", item.ID)
	require.NoError(t, err)
	assert.Len(t, atts, 2)
}

func TestItemService_ApproveAndReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	mod := seedUser(t, db, "mod@example.com", true, false)
	regular := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner Shop", "corner-shop", models.StatusPending)

	_, err := svc.Approve(regular, "shops", item.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	approved, err := svc.Approve(mod, "shops", item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, mod.ID, *approved.ApprovedBy)

	var stored models.Item
	require.NoError(t, db.Scopes(cat.Scope()).First(&stored, item.ID).Error)
	assert.Equal(t, models.StatusApproved, stored.Status)
	assert.NotNil(t, stored.ApprovedAt)
}

func TestItemService_RejectKeepsApprovedAtNull(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner Shop", "corner-shop", models.StatusPending)

	rejected, err := svc.Reject(mod, "shops", item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Equal(t, mod.ID, *rejected.ApprovedBy)

	var stored models.Item
	require.NoError(t, db.Scopes(cat.Scope()).First(&stored, item.ID).Error)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Nil(t, stored.ApprovedAt)
}

func TestItemService_ListFiltersAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	cat := mustCategory(t, "restaurants")

	a := seedItem(t, db, cat, "Spice Garden", "spice-garden", models.StatusApproved)
	require.NoError(t, db.Scopes(cat.Scope()).Where("id = ?", a.ID).Update("division", "Dhaka").Error)
	seedItem(t, db, cat, "Sea Breeze", "sea-breeze", models.StatusApproved)
	seedItem(t, db, cat, "Hidden Gem", "hidden-gem", models.StatusPending)

	items, total, err := svc.List("restaurants", &dto.ListItemsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = svc.List("restaurants", &dto.ListItemsQuery{Search: "spice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Spice Garden", items[0].Name)

	items, total, err = svc.List("restaurants", &dto.ListItemsQuery{Division: "Dhaka"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "spice-garden", items[0].Slug)
}

func TestItemService_GetBySlugOnlyApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	cat := mustCategory(t, "hotels")
	seedItem(t, db, cat, "Grand", "grand", models.StatusPending)

	_, _, err := svc.GetBySlug("hotels", "grand")
	assert.ErrorIs(t, err, ErrItemNotFound)

	approved := seedItem(t, db, cat, "Plaza", "plaza", models.StatusApproved)
	item, _, err := svc.GetBySlug("hotels", "plaza")
	require.NoError(t, err)
	assert.Equal(t, approved.ID, item.ID)
}

func TestItemService_SearchAcrossCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	seedItem(t, db, mustCategory(t, "shops"), "Tea House", "tea-house", models.StatusApproved)
	seedItem(t, db, mustCategory(t, "restaurants"), "Tea Garden", "tea-garden", models.StatusApproved)
	seedItem(t, db, mustCategory(t, "hotels"), "Hilltop", "hilltop", models.StatusApproved)

	results, err := svc.Search("tea")
	require.NoError(t, err)
	assert.Len(t, results["shops"], 1)
	assert.Len(t, results["restaurants"], 1)
	assert.NotContains(t, results, "hotels")
}

func TestItemService_ModerationListByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	seedItem(t, db, mustCategory(t, "shops"), "A", "a", models.StatusPending)
	seedItem(t, db, mustCategory(t, "hotels"), "B", "b", models.StatusPending)
	seedItem(t, db, mustCategory(t, "shops"), "C", "c", models.StatusApproved)

	pending, err := svc.ListForModeration(models.StatusPending, "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	shopsOnly, err := svc.ListForModeration(models.StatusPending, "shops")
	require.NoError(t, err)
	require.Len(t, shopsOnly, 1)
	assert.Equal(t, "shops", shopsOnly[0].Category)
}

func TestItemService_DeleteTombstones(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db, &fakeMedia{})
	mod := seedUser(t, db, "mod@example.com", true, false)
	regular := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "websites")
	item := seedItem(t, db, cat, "Example", "example", models.StatusApproved)

	assert.ErrorIs(t, svc.Delete(regular, "websites", item.ID), ErrPermissionDenied)
	require.NoError(t, svc.Delete(mod, "websites", item.ID))

	var gone models.Item
	err := db.Scopes(cat.Scope()).First(&gone, item.ID).Error
	assert.Error(t, err)

	var still models.Item
	require.NoError(t, db.Scopes(cat.Scope()).Unscoped().First(&still, item.ID).Error)
	assert.True(t, still.DeletedAt.Valid)
}
