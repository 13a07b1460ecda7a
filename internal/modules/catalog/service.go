package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"mediahub/internal/domain"
	"mediahub/internal/probe"
	"mediahub/internal/repository"
	"mediahub/internal/storage"

	"gorm.io/gorm"
)

// Service is the catalog core: record keeping over media files, playlists
// and likes, the playlist ordering rule, and the upload path that ties a
// stored object to its metadata row. Every operation runs a short sequence
// of round trips with no shared in-process state, so one instance is safe
// for concurrent request handlers.
type Service struct {
	media     MediaStore
	playlists PlaylistStore
	likes     repository.LikeRepository
	store     storage.Gateway
	prober    probe.Prober
	events    EventPublisher
	bucket    string
}

func NewService(
	media MediaStore,
	playlists PlaylistStore,
	likes repository.LikeRepository,
	store storage.Gateway,
	prober probe.Prober,
	events EventPublisher,
	bucket string,
) *Service {
	return &Service{
		media:     media,
		playlists: playlists,
		likes:     likes,
		store:     store,
		prober:    prober,
		events:    events,
		bucket:    bucket,
	}
}

/* ---------- MEDIA ---------- */

// Upload writes the object first, then creates the metadata record. A failed
// object write never leaves a record behind; a failed record insert leaves
// the object orphaned in storage, which is accepted and logged.
func (s *Service) Upload(
	ctx context.Context,
	ownerID string,
	req UploadRequest,
	fileName string,
	mimeType string,
	r io.Reader,
) (*domain.MediaFile, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	objectPath := storage.ObjectPath(ownerID, fileName)
	if _, err := s.store.Put(s.bucket, objectPath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	file := &domain.MediaFile{
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileName:    fileName,
		FilePath:    objectPath,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	}

	// Best-effort: undecodable bytes leave the dimension fields absent.
	dims := s.prober.Probe(bytes.NewReader(data), mimeType)
	file.Width = dims.Width
	file.Height = dims.Height
	file.Duration = dims.Duration

	// Images are their own thumbnail; the object is publicly addressable.
	if dims.Width != nil {
		file.ThumbnailURL = s.store.PublicURL(s.bucket, objectPath)
	}

	if err := s.CreateMedia(ctx, ownerID, file); err != nil {
		return nil, err
	}

	s.publish("media.uploaded", map[string]any{"id": file.ID, "title": file.Title})
	return file, nil
}

// CreateMedia inserts the metadata record for an already-uploaded object.
// The storage ref must resolve to an existing object; records and objects
// are never created independently of one another.
func (s *Service) CreateMedia(ctx context.Context, ownerID string, file *domain.MediaFile) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(file.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !s.store.Exists(s.bucket, file.FilePath) {
		return fmt.Errorf("%w: no object at %q", ErrStorageInconsistency, file.FilePath)
	}

	file.UserID = ownerID
	if err := s.media.Create(ctx, file); err != nil {
		log.Printf("media record insert failed, object %s left orphaned: %v", file.FilePath, err)
		return err
	}
	return nil
}

// ListMedia applies the visibility rule: unless the caller asks for their own
// records, only public ones are eligible.
func (s *Service) ListMedia(ctx context.Context, requesterID string, f repository.MediaFilters) ([]domain.MediaFile, int64, error) {
	if f.OwnerID == "" || f.OwnerID != requesterID {
		f.PublicOnly = true
	}
	return s.media.GetAll(ctx, f)
}

// ListSongs is ListMedia narrowed to audio objects.
func (s *Service) ListSongs(ctx context.Context, requesterID string, f repository.MediaFilters) ([]domain.MediaFile, int64, error) {
	f.MimePrefix = "audio/"
	return s.ListMedia(ctx, requesterID, f)
}

// SearchMedia matches public records whose title, description or tags
// contain the query, case-insensitive.
func (s *Service) SearchMedia(ctx context.Context, query string, limit, offset int) ([]domain.MediaFile, int64, error) {
	return s.media.GetAll(ctx, repository.MediaFilters{
		PublicOnly: true,
		Query:      query,
		Limit:      limit,
		Offset:     offset,
	})
}

func (s *Service) UpdateMedia(ctx context.Context, id, requesterID string, patch UpdateMediaRequest) (*domain.MediaFile, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	file, err := s.media.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if file.UserID != requesterID {
		return nil, ErrNotOwner
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		file.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		file.Description = *patch.Description
	}
	if patch.Tags != nil {
		file.Tags = *patch.Tags
	}
	if patch.IsPublic != nil {
		file.IsPublic = *patch.IsPublic
	}

	if err := s.media.Update(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// DeleteMedia removes the catalog record, then best-effort deletes the
// backing object. A storage failure is logged and swallowed: the record is
// gone either way, a dangling object never blocks catalog deletion.
func (s *Service) DeleteMedia(ctx context.Context, id, requesterID string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}

	file, err := s.media.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if file.UserID != requesterID {
		return ErrNotOwner
	}

	if err := s.media.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(s.bucket, file.FilePath); err != nil {
		log.Printf("failed to delete object %s from storage: %v", file.FilePath, err)
	}
	return nil
}

/* ---------- PLAYLISTS ---------- */

func (s *Service) CreatePlaylist(ctx context.Context, ownerID string, req CreatePlaylistRequest) (*domain.Playlist, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	playlist := &domain.Playlist{
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}

	s.publish("playlist.created", map[string]any{"id": playlist.ID, "title": playlist.Title})
	return playlist, nil
}

func (s *Service) ListPlaylists(ctx context.Context, requesterID string, f repository.PlaylistFilters) ([]domain.Playlist, int64, error) {
	if f.OwnerID == "" || f.OwnerID != requesterID {
		f.PublicOnly = true
	}
	return s.playlists.GetAll(ctx, f)
}

// AddToPlaylist appends the media file at max(position)+1. Positions only
// ever grow and are never compacted, so removals cannot collide later
// appends. Two concurrent appends can read the same max and share a
// position; relative order between those two items is then ambiguous, which
// the ordering model tolerates.
func (s *Service) AddToPlaylist(ctx context.Context, requesterID, playlistID, mediaFileID string) (*domain.PlaylistItem, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if playlist.UserID != requesterID {
		return nil, ErrNotOwner
	}

	if _, err := s.media.GetByID(ctx, mediaFileID); err != nil {
		return nil, asNotFound(err)
	}

	max, err := s.playlists.MaxPosition(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	item := &domain.PlaylistItem{
		PlaylistID:  playlistID,
		MediaFileID: mediaFileID,
		Position:    max + 1,
	}

	if err := s.playlists.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.publish("playlist.item_added", map[string]any{"playlist_id": playlistID, "media_file_id": mediaFileID})
	return item, nil
}

func (s *Service) RemoveFromPlaylist(ctx context.Context, requesterID, playlistID, mediaFileID string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return asNotFound(err)
	}
	if playlist.UserID != requesterID {
		return ErrNotOwner
	}

	removed, err := s.playlists.RemoveItem(ctx, playlistID, mediaFileID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: media file not in playlist", ErrNotFound)
	}
	return nil
}

// GetPlaylistSongs returns the playlist's media files ascending by position.
// A private playlist is invisible to non-owners; the caller cannot tell it
// apart from a missing one.
func (s *Service) GetPlaylistSongs(ctx context.Context, requesterID, playlistID string) ([]domain.MediaFile, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !playlist.IsPublic && playlist.UserID != requesterID {
		return nil, ErrNotFound
	}

	return s.playlists.GetSongs(ctx, playlistID)
}

func (s *Service) DeletePlaylist(ctx context.Context, requesterID, playlistID string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return asNotFound(err)
	}
	if playlist.UserID != requesterID {
		return ErrNotOwner
	}

	return s.playlists.Delete(ctx, playlistID)
}

/* ---------- LIKES ---------- */

// ToggleLike flips the like state for (user, media file). Check and mutation
// are separate round trips with no transaction; concurrent toggles from the
// same user can race, and a delete landing on an already-deleted row counts
// as a successful unlike.
func (s *Service) ToggleLike(ctx context.Context, userID, mediaFileID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}

	if _, err := s.media.GetByID(ctx, mediaFileID); err != nil {
		return false, asNotFound(err)
	}

	liked, err := s.likes.Exists(ctx, userID, mediaFileID)
	if err != nil {
		return false, err
	}

	if liked {
		if _, err := s.likes.Remove(ctx, userID, mediaFileID); err != nil {
			return false, err
		}
		s.publishLike(ctx, mediaFileID, false)
		return false, nil
	}

	if err := s.likes.Create(ctx, userID, mediaFileID); err != nil {
		return false, err
	}
	s.publishLike(ctx, mediaFileID, true)
	return true, nil
}

func (s *Service) publishLike(ctx context.Context, mediaFileID string, liked bool) {
	if s.events == nil {
		return
	}

	count, err := s.likes.CountForMedia(ctx, mediaFileID)
	if err != nil {
		count = 0
	}
	s.publish("media.liked", map[string]any{
		"media_file_id": mediaFileID,
		"liked":         liked,
		"likes":         count,
	})
}

/* ---------- HELPERS ---------- */

func (s *Service) publish(eventType string, payload any) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
