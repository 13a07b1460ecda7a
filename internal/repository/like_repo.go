package repository

import (
	"context"

	"mediahub/internal/domain"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Exists(ctx context.Context, userID, mediaFileID string) (bool, error)
	Create(ctx context.Context, userID, mediaFileID string) error
	Remove(ctx context.Context, userID, mediaFileID string) (bool, error)
	CountForMedia(ctx context.Context, mediaFileID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, mediaFileID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("user_id = ? AND media_file_id = ?", userID, mediaFileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *likeRepository) Create(ctx context.Context, userID, mediaFileID string) error {
	like := &domain.Like{
		UserID:      userID,
		MediaFileID: mediaFileID,
	}
	return r.db.WithContext(ctx).Create(like).Error
}

// Remove deletes the like row if present. Removing an already-gone row is
// not an error; the toggle treats it as a successful unlike.
func (r *likeRepository) Remove(ctx context.Context, userID, mediaFileID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND media_file_id = ?", userID, mediaFileID).
		Delete(&domain.Like{})

	return result.RowsAffected > 0, result.Error
}

func (r *likeRepository) CountForMedia(ctx context.Context, mediaFileID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("media_file_id = ?", mediaFileID).
		Count(&count).Error

	return count, err
}
