package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Playlist struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       string    `json:"user_id" gorm:"size:36;index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Filled by the repository from a subselect, never stored.
	SongCount int64 `json:"song_count" gorm:"->;-:migration"`

	Items []PlaylistItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PlaylistItem ties one media file into one playlist. Position is assigned
// once at insert time and never rewritten; ascending position is playback
// order. Values are unique per playlist in the absence of concurrent appends,
// and need not be contiguous.
type PlaylistItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	PlaylistID  string    `json:"playlist_id" gorm:"size:36;index;not null"`
	MediaFileID string    `json:"media_file_id" gorm:"size:36;index;not null"`
	Position    int       `json:"position" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *PlaylistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
