package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records that a user liked a media file. At most one row per
// (user, media file) pair; the pair check happens in the repository before
// insert, not as a database constraint.
type Like struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      string    `json:"user_id" gorm:"size:36;index;not null"`
	MediaFileID string    `json:"media_file_id" gorm:"size:36;index;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
