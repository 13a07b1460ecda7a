package repository

import (
	"context"
	"strings"

	"mediahub/internal/domain"

	"gorm.io/gorm"
)

// MediaFilters narrows GetAll. When OwnerID is empty the caller cannot be
// scoped to anyone, so PublicOnly is forced upstream by the catalog service.
type MediaFilters struct {
	OwnerID    string
	PublicOnly bool
	Query      string
	MimePrefix string
	Limit      int
	Offset     int
}

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// GetAll returns media files newest-first with the filter applied. Query
// matches title, description or tag membership, case-insensitive substring.
func (r *MediaRepository) GetAll(ctx context.Context, f MediaFilters) ([]domain.MediaFile, int64, error) {
	var files []domain.MediaFile
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.MediaFile{})

	if f.OwnerID != "" {
		q = q.Where("user_id = ?", f.OwnerID)
	}

	if f.PublicOnly {
		q = q.Where("is_public = ?", true)
	}

	if f.MimePrefix != "" {
		q = q.Where("mime_type LIKE ?", f.MimePrefix+"%")
	}

	if f.Query != "" {
		pat := "%" + strings.ToLower(f.Query) + "%"
		// tags is a JSON array column; casting to text makes the substring
		// match work the same on sqlite and postgres. The match runs over
		// the serialized form, so a query containing JSON punctuation
		// (quotes, commas, brackets) can hit delimiters rather than tag
		// content.
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
			pat, pat, pat,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	err := q.Find(&files).Error
	return files, total, err
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	var file domain.MediaFile

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *MediaRepository) Create(ctx context.Context, file *domain.MediaFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *MediaRepository) Update(ctx context.Context, file *domain.MediaFile) error {
	return r.db.WithContext(ctx).Save(file).Error
}

// Delete removes the record together with the playlist items and likes that
// reference it, standing in for the cascade the external store would run.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_file_id = ?", id).Delete(&domain.PlaylistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("media_file_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.MediaFile{}).Error
	})
}
