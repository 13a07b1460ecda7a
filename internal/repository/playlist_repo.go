package repository

import (
	"context"

	"mediahub/internal/domain"

	"gorm.io/gorm"
)

type PlaylistFilters struct {
	OwnerID    string
	PublicOnly bool
	Limit      int
	Offset     int
}

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

const songCountSelect = "playlists.*, " +
	"(SELECT COUNT(*) FROM playlist_items WHERE playlist_items.playlist_id = playlists.id) AS song_count"

// GetAll returns playlists newest-first, each annotated with its item count.
func (r *PlaylistRepository) GetAll(ctx context.Context, f PlaylistFilters) ([]domain.Playlist, int64, error) {
	var playlists []domain.Playlist
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Playlist{})

	if f.OwnerID != "" {
		q = q.Where("user_id = ?", f.OwnerID)
	}

	if f.PublicOnly {
		q = q.Where("is_public = ?", true)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Select(songCountSelect).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	err := q.Find(&playlists).Error
	return playlists, total, err
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var playlist domain.Playlist

	err := r.db.WithContext(ctx).
		Select(songCountSelect).
		Where("playlists.id = ?", id).
		First(&playlist).Error
	if err != nil {
		return nil, err
	}

	return &playlist, nil
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// Delete removes the playlist and its items.
func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&domain.PlaylistItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Playlist{}).Error
	})
}

// MaxPosition reads the highest position in a playlist, 0 when empty. The
// next append goes at max+1; two concurrent appends can read the same max
// and share a position, which the ordering model tolerates.
func (r *PlaylistRepository) MaxPosition(ctx context.Context, playlistID string) (int, error) {
	var max int

	err := r.db.WithContext(ctx).
		Model(&domain.PlaylistItem{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error

	return max, err
}

func (r *PlaylistRepository) CreateItem(ctx context.Context, item *domain.PlaylistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlaylistRepository) RemoveItem(ctx context.Context, playlistID, mediaFileID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND media_file_id = ?", playlistID, mediaFileID).
		Delete(&domain.PlaylistItem{})

	return result.RowsAffected > 0, result.Error
}

// GetSongs joins playlist items to their media files, ascending by position.
func (r *PlaylistRepository) GetSongs(ctx context.Context, playlistID string) ([]domain.MediaFile, error) {
	var files []domain.MediaFile

	err := r.db.WithContext(ctx).
		Model(&domain.MediaFile{}).
		Joins("JOIN playlist_items ON playlist_items.media_file_id = media_files.id").
		Where("playlist_items.playlist_id = ?", playlistID).
		Order("playlist_items.position ASC").
		Find(&files).Error

	return files, err
}

func (r *PlaylistRepository) CountItems(ctx context.Context, playlistID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&domain.PlaylistItem{}).
		Where("playlist_id = ?", playlistID).
		Count(&count).Error

	return count, err
}
