package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listinghub/internal/dto"
	"listinghub/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestUserService_SelfRoleChangeAlwaysFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "admin@example.com", false, true)

	_, err := svc.UpdateRole(admin, admin.ID, &dto.UpdateRoleRequest{IsAdmin: boolPtr(false)})
	assert.ErrorIs(t, err, ErrSelfRoleChange)

	// payload content is irrelevant, the check is on identity
	_, err = svc.UpdateRole(admin, admin.ID, &dto.UpdateRoleRequest{})
	assert.ErrorIs(t, err, ErrSelfRoleChange)
}

func TestUserService_ClearingAdminClearsModerator(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "admin@example.com", false, true)
	target := seedUser(t, db, "target@example.com", true, true)

	_, err := svc.UpdateRole(admin, target.ID, &dto.UpdateRoleRequest{IsAdmin: boolPtr(false)})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.False(t, stored.IsAdmin)
	assert.False(t, stored.IsModerator)
}

func TestUserService_ExplicitModeratorSurvivesAdminClear(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "admin@example.com", false, true)
	target := seedUser(t, db, "target@example.com", true, true)

	_, err := svc.UpdateRole(admin, target.ID, &dto.UpdateRoleRequest{
		IsAdmin:     boolPtr(false),
		IsModerator: boolPtr(true),
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.False(t, stored.IsAdmin)
	assert.True(t, stored.IsModerator)
}

func TestUserService_SelfDeleteFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "admin@example.com", false, true)

	assert.ErrorIs(t, svc.Delete(admin, admin.ID), ErrSelfDelete)
}

func TestUserService_DeleteAdminProtection(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, "admin@example.com", false, true)
	otherAdmin := seedUser(t, db, "admin2@example.com", false, true)
	mod := seedUser(t, db, "mod@example.com", true, false)

	// a non-admin moderator cannot delete an admin
	assert.ErrorIs(t, svc.Delete(mod, admin.ID), ErrAdminProtected)

	// an admin can delete a moderator, and another admin
	require.NoError(t, svc.Delete(admin, mod.ID))
	require.NoError(t, svc.Delete(admin, otherAdmin.ID))
}

func TestUserService_ListWithCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	reviews := NewReviewService(db)
	ratings := NewRatingService(db)
	user := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	_, err := reviews.Create(user, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Nice",
	})
	require.NoError(t, err)
	_, err = ratings.Rate(user, "shops", item.ID, 4)
	require.NoError(t, err)

	users, total, err := svc.List(&dto.UserListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, users[0].ReviewsCount)
	assert.EqualValues(t, 1, users[0].RatingsCount)
}

func TestUserService_ListSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, "alice@example.com", false, false)
	seedUser(t, db, "bob@example.com", false, false)

	users, total, err := svc.List(&dto.UserListQuery{Search: "alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)
}

func TestUserService_Activity(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	reviews := NewReviewService(db)
	ratings := NewRatingService(db)
	updates := NewUpdateService(db, &fakeMedia{})
	user := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	_, err := reviews.Create(user, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Nice",
	})
	require.NoError(t, err)
	_, err = ratings.Rate(user, "shops", item.ID, 4)
	require.NoError(t, err)
	_, err = updates.Submit(t.Context(), user, &dto.SubmitUpdateRequest{
		ItemType: "shops", ItemID: item.ID,
		ProposedData: map[string]interface{}{"famous_for": "tea"},
	}, nil)
	require.NoError(t, err)

	activity, err := svc.Activity(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, activity.ReviewsCount)
	assert.EqualValues(t, 1, activity.RatingsCount)
	assert.EqualValues(t, 1, activity.PendingUpdates)
	assert.Len(t, activity.RecentReviews, 1)
	assert.Len(t, activity.RecentRatings, 1)
	assert.Len(t, activity.RecentRequests, 1)
}

func TestUserService_Stats(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, "admin@example.com", false, true)
	seedUser(t, db, "mod@example.com", true, false)
	seedUser(t, db, "user@example.com", false, false)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalModerators)
	assert.EqualValues(t, 1, stats.TotalAdmins)
	assert.EqualValues(t, 3, stats.ActiveUsers)
}
