package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"mediahub/internal/database"
	"mediahub/internal/domain"
	"mediahub/internal/probe"
	"mediahub/internal/repository"
	"mediahub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "media-files"

type testEnv struct {
	service *Service
	gateway *storage.Local
	root    string
	media   *repository.MediaRepository
	lists   *repository.PlaylistRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// In-memory sqlite: every pooled connection gets its own database, so
	// the pool must stay at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.MediaFile{},
		&domain.Playlist{},
		&domain.PlaylistItem{},
		&domain.Like{},
	))

	root := t.TempDir()
	gateway := storage.NewLocal(root, "/static")

	mediaRepo := repository.NewMediaRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	svc := NewService(
		mediaRepo,
		playlistRepo,
		repository.NewLikeRepository(db),
		gateway,
		probe.Image{},
		nil,
		testBucket,
	)

	return &testEnv{service: svc, gateway: gateway, root: root, media: mediaRepo, lists: playlistRepo}
}

func (e *testEnv) uploadSong(t *testing.T, ownerID, title string, tags []string, isPublic bool) *domain.MediaFile {
	t.Helper()

	file, err := e.service.Upload(
		context.Background(),
		ownerID,
		UploadRequest{Title: title, Tags: tags, IsPublic: isPublic},
		strings.ToLower(strings.ReplaceAll(title, " ", "_"))+".mp3",
		"audio/mpeg",
		strings.NewReader("fake mp3 bytes"),
	)
	require.NoError(t, err)
	return file
}

func (e *testEnv) objectCount(t *testing.T) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(e.root, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			count++
		}
		return err
	})
	require.NoError(t, err)
	return count
}

/* ---------- UPLOAD ---------- */

func TestUpload_EmptyTitleWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Upload(
		context.Background(), "user-a",
		UploadRequest{Title: "   "},
		"song.mp3", "audio/mpeg", strings.NewReader("bytes"),
	)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, env.objectCount(t), "no object may exist after a rejected upload")
}

func TestUpload_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Upload(
		context.Background(), "",
		UploadRequest{Title: "Song"},
		"song.mp3", "audio/mpeg", strings.NewReader("bytes"),
	)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpload_CreatesObjectAndRecord(t *testing.T) {
	env := newTestEnv(t)

	file := env.uploadSong(t, "user-a", "Song", []string{"Artist", "Album"}, true)

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "user-a", file.UserID)
	assert.True(t, strings.HasPrefix(file.FilePath, "user-a/"))
	assert.True(t, env.gateway.Exists(testBucket, file.FilePath))
	assert.Equal(t, int64(len("fake mp3 bytes")), file.FileSize)

	song := ToSongResponse(*file)
	assert.Equal(t, "Artist", song.Artist)
	assert.Equal(t, "Album", song.Album)
}

func TestUpload_NoTagsYieldsUnknownArtist(t *testing.T) {
	env := newTestEnv(t)

	file := env.uploadSong(t, "user-a", "Untagged", nil, true)

	song := ToSongResponse(*file)
	assert.Equal(t, "Unknown Artist", song.Artist)
	assert.Equal(t, "Unknown Album", song.Album)
}

func TestCreateMedia_StorageInconsistency(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.CreateMedia(context.Background(), "user-a", &domain.MediaFile{
		Title:    "Ghost",
		FilePath: "user-a/never_uploaded.mp3",
	})

	assert.ErrorIs(t, err, ErrStorageInconsistency)
}

/* ---------- MEDIA CRUD ---------- */

func TestListMedia_VisibilityRules(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSong(t, "user-a", "Public Song", nil, true)
	env.uploadSong(t, "user-a", "Private Song", nil, false)

	// Anonymous: public only.
	files, total, err := env.service.ListMedia(context.Background(), "", repository.MediaFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Public Song", files[0].Title)

	// Non-owner asking for A's records: public only.
	_, total, err = env.service.ListMedia(context.Background(), "user-b", repository.MediaFilters{OwnerID: "user-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Owner sees both, newest first.
	files, total, err = env.service.ListMedia(context.Background(), "user-a", repository.MediaFilters{OwnerID: "user-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, files, 2)
}

func TestSearchMedia_MatchesTitleDescriptionTags(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSong(t, "user-a", "Night Drive", []string{"The Velvets"}, true)
	env.uploadSong(t, "user-a", "Hidden Gem", nil, false)

	byTitle, _, err := env.service.SearchMedia(context.Background(), "night", 20, 0)
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Night Drive", byTitle[0].Title)

	byTag, _, err := env.service.SearchMedia(context.Background(), "velvet", 20, 0)
	require.NoError(t, err)
	assert.Len(t, byTag, 1)

	// Private records never surface in search.
	hidden, _, err := env.service.SearchMedia(context.Background(), "hidden", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, hidden)
}

func TestUpdateMedia_OwnerGate(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Original", nil, false)

	_, err := env.service.UpdateMedia(context.Background(), file.ID, "user-b", UpdateMediaRequest{})
	assert.ErrorIs(t, err, ErrNotOwner)

	newTitle := "Renamed"
	makePublic := true
	updated, err := env.service.UpdateMedia(context.Background(), file.ID, "user-a", UpdateMediaRequest{
		Title:    &newTitle,
		IsPublic: &makePublic,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsPublic)

	_, err = env.service.UpdateMedia(context.Background(), "no-such-id", "user-a", UpdateMediaRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMedia_NotOwnerLeavesEverything(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Keeper", nil, true)

	err := env.service.DeleteMedia(context.Background(), file.ID, "user-b")
	assert.ErrorIs(t, err, ErrNotOwner)

	kept, err := env.media.GetByID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keeper", kept.Title)
	assert.True(t, env.gateway.Exists(testBucket, file.FilePath))
}

func TestDeleteMedia_CascadesAndRemovesObject(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Doomed", nil, true)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)
	_, err = env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, file.ID)
	require.NoError(t, err)

	liked, err := env.service.ToggleLike(context.Background(), "user-a", file.ID)
	require.NoError(t, err)
	require.True(t, liked)

	require.NoError(t, env.service.DeleteMedia(context.Background(), file.ID, "user-a"))

	_, err = env.media.GetByID(context.Background(), file.ID)
	assert.Error(t, err)
	assert.False(t, env.gateway.Exists(testBucket, file.FilePath))

	songs, err := env.service.GetPlaylistSongs(context.Background(), "user-a", playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, songs, "playlist items referencing deleted media must cascade away")
}

/* ---------- PLAYLISTS & ORDERING ---------- */

func TestAddToPlaylist_AppendMonotonic(t *testing.T) {
	env := newTestEnv(t)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)

	titles := []string{"First", "Second", "Third"}
	prev := 0
	for _, title := range titles {
		file := env.uploadSong(t, "user-a", title, nil, true)
		item, err := env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, file.ID)
		require.NoError(t, err)
		assert.Greater(t, item.Position, prev, "positions must strictly increase in insertion order")
		prev = item.Position
	}

	songs, err := env.service.GetPlaylistSongs(context.Background(), "user-a", playlist.ID)
	require.NoError(t, err)
	require.Len(t, songs, 3)
	for i, title := range titles {
		assert.Equal(t, title, songs[i].Title)
	}
}

func TestAddToPlaylist_MissingReferences(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Song", nil, true)

	_, err := env.service.AddToPlaylist(context.Background(), "user-a", "no-such-playlist", file.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)

	_, err = env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, "no-such-media")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.service.AddToPlaylist(context.Background(), "user-b", playlist.ID, file.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

// Two concurrent appends may legitimately end up sharing a position; that is
// accepted ambiguity, not corruption. The playlist must still hold both items.
func TestAddToPlaylist_ConcurrentAppendsKeepBothItems(t *testing.T) {
	env := newTestEnv(t)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Race"})
	require.NoError(t, err)
	a := env.uploadSong(t, "user-a", "Left", nil, true)
	b := env.uploadSong(t, "user-a", "Right", nil, true)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, file := range []*domain.MediaFile{a, b} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, id)
		}(i, file.ID)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	count, err := env.lists.CountItems(context.Background(), playlist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRemoveFromPlaylist_NeverReusesPositions(t *testing.T) {
	env := newTestEnv(t)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)

	first := env.uploadSong(t, "user-a", "First", nil, true)
	second := env.uploadSong(t, "user-a", "Second", nil, true)
	third := env.uploadSong(t, "user-a", "Third", nil, true)

	_, err = env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, first.ID)
	require.NoError(t, err)
	item2, err := env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, env.service.RemoveFromPlaylist(context.Background(), "user-a", playlist.ID, first.ID))

	item3, err := env.service.AddToPlaylist(context.Background(), "user-a", playlist.ID, third.ID)
	require.NoError(t, err)
	assert.Greater(t, item3.Position, item2.Position, "removal must not cause position reuse")
}

func TestListPlaylists_VisibilityScenario(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Road Trip"})
	require.NoError(t, err)

	// User B asking for A's playlists sees nothing: private, not theirs.
	lists, total, err := env.service.ListPlaylists(context.Background(), "user-b", repository.PlaylistFilters{OwnerID: "user-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, lists)

	// The owner sees it, annotated with an empty song count.
	lists, total, err = env.service.ListPlaylists(context.Background(), "user-a", repository.PlaylistFilters{OwnerID: "user-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, lists, 1)
	assert.Equal(t, "Road Trip", lists[0].Title)
	assert.EqualValues(t, 0, lists[0].SongCount)
}

func TestGetPlaylistSongs_PrivateHiddenFromNonOwner(t *testing.T) {
	env := newTestEnv(t)

	playlist, err := env.service.CreatePlaylist(context.Background(), "user-a", CreatePlaylistRequest{Title: "Secret"})
	require.NoError(t, err)

	_, err = env.service.GetPlaylistSongs(context.Background(), "user-b", playlist.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.service.GetPlaylistSongs(context.Background(), "user-a", playlist.ID)
	assert.NoError(t, err)
}

/* ---------- LIKES ---------- */

func TestToggleLike_Alternation(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Song", nil, true)

	liked, err := env.service.ToggleLike(context.Background(), "user-b", file.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = env.service.ToggleLike(context.Background(), "user-b", file.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLike_UnknownMedia(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ToggleLike(context.Background(), "user-a", "no-such-media")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	file := env.uploadSong(t, "user-a", "Song", nil, true)

	_, err := env.service.ToggleLike(context.Background(), "", file.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
