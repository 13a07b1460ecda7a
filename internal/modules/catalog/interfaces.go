package catalog

import (
	"context"

	"mediahub/internal/domain"
	"mediahub/internal/repository"
)

// MediaStore — only the media methods the catalog service uses.
type MediaStore interface {
	GetAll(ctx context.Context, f repository.MediaFilters) ([]domain.MediaFile, int64, error)
	GetByID(ctx context.Context, id string) (*domain.MediaFile, error)
	Create(ctx context.Context, file *domain.MediaFile) error
	Update(ctx context.Context, file *domain.MediaFile) error
	Delete(ctx context.Context, id string) error
}

// PlaylistStore — playlist rows plus the item sub-collection.
type PlaylistStore interface {
	GetAll(ctx context.Context, f repository.PlaylistFilters) ([]domain.Playlist, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)
	Create(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id string) error
	MaxPosition(ctx context.Context, playlistID string) (int, error)
	CreateItem(ctx context.Context, item *domain.PlaylistItem) error
	RemoveItem(ctx context.Context, playlistID, mediaFileID string) (bool, error)
	GetSongs(ctx context.Context, playlistID string) ([]domain.MediaFile, error)
}

// EventPublisher pushes catalog activity to connected clients. Best-effort;
// the service ignores delivery.
type EventPublisher interface {
	Publish(eventType string, payload any)
}
