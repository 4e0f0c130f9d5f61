package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"listinghub/internal/config"
	"listinghub/internal/models"
)

// Store persists uploaded images for an item and tracks them as attachments.
type Store interface {
	Attach(ctx context.Context, itemType string, itemID uint, file *multipart.FileHeader) (*models.Attachment, error)
	List(itemType string, itemID uint) ([]models.Attachment, error)
	Clear(itemType string, itemID uint) error
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
}

const imageEager = "q_auto,f_auto,w_800,c_fill"

var eagerAsyncFalse = false

type cloudinaryUploader struct {
	cloudName string
	uploader  *uploader.API
}

func NewCloudinaryUploader(cfg *config.Config) (Uploader, error) {
	cc, err := cldconfig.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	up, err := uploader.NewWithConfiguration(cc)
	if err != nil {
		return nil, fmt.Errorf("cloudinary uploader: %w", err)
	}
	return &cloudinaryUploader{cloudName: cfg.CloudinaryCloudName, uploader: up}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := u.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

type store struct {
	db       *gorm.DB
	uploader Uploader
	folder   string
}

func NewStore(db *gorm.DB, up Uploader, folder string) Store {
	return &store{db: db, uploader: up, folder: folder}
}

func (s *store) Attach(ctx context.Context, itemType string, itemID uint, file *multipart.FileHeader) (*models.Attachment, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	folder := fmt.Sprintf("%s/%s/%d", s.folder, itemType, itemID)

	url, err := s.uploader.Upload(ctx, f, folder, publicID)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	att := &models.Attachment{
		ItemType: itemType,
		ItemID:   itemID,
		PublicID: folder + "/" + publicID,
		URL:      url,
		FileName: file.Filename,
	}
	if err := s.db.Create(att).Error; err != nil {
		return nil, err
	}
	return att, nil
}

func (s *store) List(itemType string, itemID uint) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := s.db.Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at ASC").Find(&atts).Error
	return atts, err
}

func (s *store) Clear(itemType string, itemID uint) error {
	return s.db.Where("item_type = ? AND item_id = ?", itemType, itemID).
		Delete(&models.Attachment{}).Error
}
