package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listinghub/internal/dto"
	"listinghub/internal/models"
)

func TestReviewService_CreateAutoApproves(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "restaurants")
	item := seedItem(t, db, cat, "Spice Garden", "spice-garden", models.StatusApproved)

	review, err := svc.Create(user, &dto.CreateReviewRequest{
		ItemType: "restaurants",
		ItemID:   item.ID,
		Comment:  "Great food",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, review.Status)
	require.NotNil(t, review.ApprovedAt)
	assert.Equal(t, user.ID, *review.ApprovedBy)
}

func TestReviewService_CreateLegacyTagResolves(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "tourist-spots")
	item := seedItem(t, db, cat, "Cox's Bazar", "coxs-bazar", models.StatusApproved)

	review, err := svc.Create(user, &dto.CreateReviewRequest{
		ItemType: "TouristSpot",
		ItemID:   item.ID,
		Comment:  "Beautiful beach",
	})
	require.NoError(t, err)
	assert.Equal(t, "tourist-spots", review.ItemType)
}

func TestReviewService_ReplyMustTargetSameItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := seedUser(t, db, "user@example.com", false, false)
	cat := mustCategory(t, "restaurants")
	itemA := seedItem(t, db, cat, "A", "a", models.StatusApproved)
	itemB := seedItem(t, db, cat, "B", "b", models.StatusApproved)

	parent, err := svc.Create(user, &dto.CreateReviewRequest{
		ItemType: "restaurants", ItemID: itemA.ID, Comment: "First",
	})
	require.NoError(t, err)

	_, err = svc.Create(user, &dto.CreateReviewRequest{
		ItemType: "restaurants", ItemID: itemB.ID, Comment: "Reply", ParentID: &parent.ID,
	})
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent_id")

	reply, err := svc.Create(user, &dto.CreateReviewRequest{
		ItemType: "restaurants", ItemID: itemA.ID, Comment: "Reply", ParentID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestReviewService_UpdateOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	owner := seedUser(t, db, "owner@example.com", false, false)
	other := seedUser(t, db, "other@example.com", false, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(owner, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Nice",
	})
	require.NoError(t, err)

	_, err = svc.Update(other, review.ID, &dto.UpdateReviewRequest{Comment: "Hijacked"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(owner, review.ID, &dto.UpdateReviewRequest{Comment: "Even nicer"})
	require.NoError(t, err)
	assert.Equal(t, "Even nicer", updated.Comment)
}

func TestReviewService_DeleteOwnerOrModerator(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	owner := seedUser(t, db, "owner@example.com", false, false)
	other := seedUser(t, db, "other@example.com", false, false)
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(owner, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Nice",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other, review.ID), ErrPermissionDenied)
	require.NoError(t, svc.Delete(mod, review.ID))

	var gone models.Review
	assert.Error(t, db.First(&gone, review.ID).Error)
}

func TestReviewService_ListTopLevelWithRepliesAndRatings(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	ratings := NewRatingService(db)
	alice := seedUser(t, db, "alice@example.com", false, false)
	bob := seedUser(t, db, "bob@example.com", false, false)
	cat := mustCategory(t, "restaurants")
	item := seedItem(t, db, cat, "Spice Garden", "spice-garden", models.StatusApproved)

	parent, err := svc.Create(alice, &dto.CreateReviewRequest{
		ItemType: "restaurants", ItemID: item.ID, Comment: "Lovely",
	})
	require.NoError(t, err)
	_, err = svc.Create(bob, &dto.CreateReviewRequest{
		ItemType: "restaurants", ItemID: item.ID, Comment: "Agreed", ParentID: &parent.ID,
	})
	require.NoError(t, err)

	_, err = ratings.Rate(alice, "restaurants", item.ID, 5)
	require.NoError(t, err)

	reviews, total, err := svc.ListForItem(&dto.ReviewListQuery{
		ItemType: "restaurants", ItemID: item.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reviews, 1)
	require.Len(t, reviews[0].Replies, 1)
	require.NotNil(t, reviews[0].UserRating)
	assert.Equal(t, 5, *reviews[0].UserRating)
	assert.Nil(t, reviews[0].Replies[0].UserRating)
}

func TestReviewService_ReportDuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := seedUser(t, db, "author@example.com", false, false)
	reporter := seedUser(t, db, "reporter@example.com", false, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(author, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Spam",
	})
	require.NoError(t, err)

	_, err = svc.Report(reporter, review.ID)
	require.NoError(t, err)

	_, err = svc.Report(reporter, review.ID)
	assert.ErrorIs(t, err, ErrAlreadyReported)

	var count int64
	db.Model(&models.ReviewReport{}).Where("review_id = ?", review.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReviewService_ResolveReportDismiss(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := seedUser(t, db, "author@example.com", false, false)
	reporter := seedUser(t, db, "reporter@example.com", false, false)
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(author, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Fine actually",
	})
	require.NoError(t, err)
	report, err := svc.Report(reporter, review.ID)
	require.NoError(t, err)

	resolved, err := svc.ResolveReport(mod, report.ID, "dismiss")
	require.NoError(t, err)
	assert.Equal(t, models.ReportDismissed, resolved.Status)

	// the review survives a dismissal
	var still models.Review
	assert.NoError(t, db.First(&still, review.ID).Error)
}

func TestReviewService_ResolveReportDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := seedUser(t, db, "author@example.com", false, false)
	reporter := seedUser(t, db, "reporter@example.com", false, false)
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(author, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Spam",
	})
	require.NoError(t, err)
	report, err := svc.Report(reporter, review.ID)
	require.NoError(t, err)

	resolved, err := svc.ResolveReport(mod, report.ID, "delete")
	require.NoError(t, err)
	assert.Equal(t, models.ReportReviewed, resolved.Status)

	var gone models.Review
	assert.Error(t, db.First(&gone, review.ID).Error)
}

func TestReviewService_ResolveReportDeleteWithVanishedReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := seedUser(t, db, "author@example.com", false, false)
	reporter := seedUser(t, db, "reporter@example.com", false, false)
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(author, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Spam",
	})
	require.NoError(t, err)
	report, err := svc.Report(reporter, review.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(author, review.ID))

	// the report is still marked reviewed even though the review is gone
	resolved, err := svc.ResolveReport(mod, report.ID, "delete")
	require.NoError(t, err)
	assert.Equal(t, models.ReportReviewed, resolved.Status)
}

func TestReviewService_ModerationRejectRecordsActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	author := seedUser(t, db, "author@example.com", false, false)
	mod := seedUser(t, db, "mod@example.com", true, false)
	cat := mustCategory(t, "shops")
	item := seedItem(t, db, cat, "Corner", "corner", models.StatusApproved)

	review, err := svc.Create(author, &dto.CreateReviewRequest{
		ItemType: "shops", ItemID: item.ID, Comment: "Borderline",
	})
	require.NoError(t, err)

	_, err = svc.RejectReview(author, review.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	rejected, err := svc.RejectReview(mod, review.ID)
	require.NoError(t, err)

	var stored models.Review
	require.NoError(t, db.First(&stored, rejected.ID).Error)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Equal(t, mod.ID, *stored.ApprovedBy)
}
