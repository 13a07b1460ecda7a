package catalog

import "mediahub/internal/domain"

// ---------- MEDIA ----------

type UploadRequest struct {
	Title       string   `form:"title" validate:"required"`
	Description string   `form:"description"`
	Tags        []string `form:"tags"`
	IsPublic    bool     `form:"is_public"`
}

type UpdateMediaRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsPublic    *bool     `json:"is_public,omitempty"`
}

// ---------- PLAYLISTS ----------

type CreatePlaylistRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type AddToPlaylistRequest struct {
	MediaFileID string `json:"media_file_id" binding:"required"`
}

// ---------- SONG VIEW ----------

// SongResponse is the media row plus the artist/album reading of its tag
// list. Tags doubling as artist/album is a display convention; the store
// neither validates nor interprets it.
type SongResponse struct {
	domain.MediaFile
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

func ToSongResponse(m domain.MediaFile) SongResponse {
	artist, album := "Unknown Artist", "Unknown Album"
	if len(m.Tags) > 0 && m.Tags[0] != "" {
		artist = m.Tags[0]
	}
	if len(m.Tags) > 1 && m.Tags[1] != "" {
		album = m.Tags[1]
	}

	return SongResponse{MediaFile: m, Artist: artist, Album: album}
}

func ToSongResponses(files []domain.MediaFile) []SongResponse {
	songs := make([]SongResponse, len(files))
	for i, f := range files {
		songs[i] = ToSongResponse(f)
	}
	return songs
}
