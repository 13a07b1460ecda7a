package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaFile is one uploaded object plus its catalog metadata. FilePath is the
// storage gateway path the record was created against; the row is never
// inserted without a completed upload behind it.
type MediaFile struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	UserID      string                      `json:"user_id" gorm:"size:36;index;not null"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description,omitempty"`
	FileName    string                      `json:"file_name"`
	FilePath    string                      `json:"file_path"`
	FileSize    int64                       `json:"file_size,omitempty"`
	MimeType    string                      `json:"mime_type,omitempty"`
	Duration    *int                        `json:"duration,omitempty"`
	Width       *int                        `json:"width,omitempty"`
	Height      *int                        `json:"height,omitempty"`
	ThumbnailURL string                     `json:"thumbnail_url,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
	IsPublic    bool                        `json:"is_public"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (m *MediaFile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
