package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync/atomic"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"listinghub/internal/catalog"
	"listinghub/internal/database"
	"listinghub/internal/models"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory SQLite (modernc.org/sqlite) database
// and runs the full migration, item tables included.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}

	// A single connection keeps the shared in-memory database alive for
	// the whole test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, moderator, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:        email,
		Email:       email,
		Password:    "hash",
		IsModerator: moderator,
		IsAdmin:     admin,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedItem(t *testing.T, db *gorm.DB, cat *catalog.Category, name, slug, status string) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:            name,
		Slug:            slug,
		Status:          status,
		LastInfoUpdated: time.Now(),
	}
	if status == models.StatusApproved {
		now := time.Now()
		item.ApprovedAt = &now
	}
	if err := db.Scopes(cat.Scope()).Create(item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

func mustCategory(t *testing.T, slug string) *catalog.Category {
	t.Helper()
	cat, ok := catalog.BySlug(slug)
	if !ok {
		t.Fatalf("unknown category %q", slug)
	}
	return cat
}

// fakeMedia is an in-memory media.Store for tests.
type fakeMedia struct {
	attachments []models.Attachment
	clearCalls  int
	nextID      uint
}

func (f *fakeMedia) Attach(_ context.Context, itemType string, itemID uint, file *multipart.FileHeader) (*models.Attachment, error) {
	f.nextID++
	att := models.Attachment{
		ID:       f.nextID,
		ItemType: itemType,
		ItemID:   itemID,
		URL:      fmt.Sprintf("https://media.test/%s/%d/%d", itemType, itemID, f.nextID),
		FileName: file.Filename,
	}
	f.attachments = append(f.attachments, att)
	return &att, nil
}

func (f *fakeMedia) List(itemType string, itemID uint) ([]models.Attachment, error) {
	var out []models.Attachment
	for _, a := range f.attachments {
		if a.ItemType == itemType && a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeMedia) Clear(itemType string, itemID uint) error {
	f.clearCalls++
	kept := f.attachments[:0]
	for _, a := range f.attachments {
		if a.ItemType != itemType || a.ItemID != itemID {
			kept = append(kept, a)
		}
	}
	f.attachments = kept
	return nil
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}
