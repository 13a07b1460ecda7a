package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"mediahub/internal/pkg/response"
	"mediahub/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- MEDIA HANDLERS ---------- */

// ListMedia handles GET /api/v1/media?owner_id=...&q=...&mime=...
func (h *Handler) ListMedia(c *gin.Context) {
	f := parseMediaFilters(c)

	files, total, err := h.service.ListMedia(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"media": files,
		"total": total,
	})
}

// ListSongs handles GET /api/v1/songs — the audio slice of the catalog,
// served in the artist/album song view.
func (h *Handler) ListSongs(c *gin.Context) {
	f := parseMediaFilters(c)

	files, total, err := h.service.ListSongs(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"songs": ToSongResponses(files),
		"total": total,
	})
}

// Search handles GET /api/v1/search?q=... over public media only.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter q is required")
		return
	}

	limit, offset := parseWindow(c)
	files, total, err := h.service.SearchMedia(c.Request.Context(), query, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"songs": ToSongResponses(files),
		"total": total,
	})
}

// Upload handles POST /api/v1/media (multipart, protected).
func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A file is required")
		return
	}

	req := UploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		IsPublic:    c.PostForm("is_public") == "true",
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Failed to read uploaded file")
		return
	}
	defer src.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	file, err := h.service.Upload(c.Request.Context(), userID, req, fileHeader.Filename, mimeType, src)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"media": file})
}

// UpdateMedia handles PATCH /api/v1/media/:id (protected).
func (h *Handler) UpdateMedia(c *gin.Context) {
	var patch UpdateMediaRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	file, err := h.service.UpdateMedia(c.Request.Context(), c.Param("id"), c.GetString("user_id"), patch)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"media": file})
}

// DeleteMedia handles DELETE /api/v1/media/:id (protected).
func (h *Handler) DeleteMedia(c *gin.Context) {
	err := h.service.DeleteMedia(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ToggleLike handles POST /api/v1/media/:id/like (protected).
func (h *Handler) ToggleLike(c *gin.Context) {
	liked, err := h.service.ToggleLike(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

/* ---------- PLAYLIST HANDLERS ---------- */

// ListPlaylists handles GET /api/v1/playlists?owner_id=...
func (h *Handler) ListPlaylists(c *gin.Context) {
	limit, offset := parseWindow(c)
	f := repository.PlaylistFilters{
		OwnerID: c.Query("owner_id"),
		Limit:   limit,
		Offset:  offset,
	}

	playlists, total, err := h.service.ListPlaylists(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"playlists": playlists,
		"total":     total,
	})
}

// CreatePlaylist handles POST /api/v1/playlists (protected).
func (h *Handler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title is required")
		return
	}

	playlist, err := h.service.CreatePlaylist(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"playlist": playlist})
}

// GetPlaylistSongs handles GET /api/v1/playlists/:id/songs.
func (h *Handler) GetPlaylistSongs(c *gin.Context) {
	files, err := h.service.GetPlaylistSongs(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"songs": ToSongResponses(files)})
}

// AddToPlaylist handles POST /api/v1/playlists/:id/songs (protected).
func (h *Handler) AddToPlaylist(c *gin.Context) {
	var req AddToPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "media_file_id is required")
		return
	}

	item, err := h.service.AddToPlaylist(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.MediaFileID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// RemoveFromPlaylist handles DELETE /api/v1/playlists/:id/songs/:mediaId (protected).
func (h *Handler) RemoveFromPlaylist(c *gin.Context) {
	err := h.service.RemoveFromPlaylist(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("mediaId"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id (protected).
func (h *Handler) DeletePlaylist(c *gin.Context) {
	err := h.service.DeletePlaylist(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- ROUTE REGISTRATION ---------- */

// RegisterPublicRoutes — read endpoints; an optional token widens visibility
// to the caller's own private records.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/media", h.ListMedia)
	r.GET("/songs", h.ListSongs)
	r.GET("/search", h.Search)
	r.GET("/playlists", h.ListPlaylists)
	r.GET("/playlists/:id/songs", h.GetPlaylistSongs)
}

// RegisterProtectedRoutes — every mutation requires an authenticated owner.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/media", h.Upload)
	r.PATCH("/media/:id", h.UpdateMedia)
	r.DELETE("/media/:id", h.DeleteMedia)
	r.POST("/media/:id/like", h.ToggleLike)

	r.POST("/playlists", h.CreatePlaylist)
	r.DELETE("/playlists/:id", h.DeletePlaylist)
	r.POST("/playlists/:id/songs", h.AddToPlaylist)
	r.DELETE("/playlists/:id/songs/:mediaId", h.RemoveFromPlaylist)
}

/* ---------- HELPERS ---------- */

func parseMediaFilters(c *gin.Context) repository.MediaFilters {
	limit, offset := parseWindow(c)
	return repository.MediaFilters{
		OwnerID:    c.Query("owner_id"),
		Query:      strings.TrimSpace(c.Query("q")),
		MimePrefix: c.Query("mime"),
		Limit:      limit,
		Offset:     offset,
	}
}

func parseWindow(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "NOT_OWNER", "You don't own this resource")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrUploadFailed):
		response.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", err.Error())
	case errors.Is(err, ErrStorageInconsistency):
		response.Error(c, http.StatusInternalServerError, "STORAGE_INCONSISTENCY", err.Error())
	default:
		// Backend failure: message passed through unchanged.
		response.Error(c, http.StatusInternalServerError, "BACKEND_ERROR", err.Error())
	}
}
