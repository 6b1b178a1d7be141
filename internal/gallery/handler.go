package gallery

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amara-wedding/backend/pkg/response"
	"github.com/amara-wedding/backend/pkg/storage"
)

// Photo is a gallery entry returned to clients. The URL is presigned and
// expires, so clients should not cache it long term.
type Photo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Handler serves the wedding photo gallery. s3 is nil when storage is not
// configured, in which case the endpoints answer 503.
type Handler struct {
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates the gallery handler.
func NewHandler(s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{s3: s3, logger: logger}
}

// List handles GET /api/gallery.
func (h *Handler) List(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "photo gallery is not configured")
		return
	}
	ctx := c.Request.Context()

	keys, err := h.s3.ListKeys(ctx, h.s3.GalleryBucket(), storage.FolderPhotos+"/")
	if err != nil {
		h.logger.Error("list gallery objects failed", zap.Error(err))
		response.Internal(c, "failed to load gallery")
		return
	}

	photos := make([]Photo, 0, len(keys))
	for _, key := range keys {
		url, err := h.s3.GeneratePresignedDownloadURL(ctx, h.s3.GalleryBucket(), key, h.s3.PresignExpire())
		if err != nil {
			h.logger.Error("presign gallery object failed", zap.String("key", key), zap.Error(err))
			continue
		}
		photos = append(photos, Photo{Key: key, URL: url})
	}
	response.OK(c, photos)
}

// Upload handles POST /api/admin/gallery. Accepts a multipart form with a
// "photo" file field.
func (h *Handler) Upload(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "photo gallery is not configured")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required")
		return
	}
	if fileHeader.Size > storage.MaxPhotoFileSize {
		response.BadRequest(c, fmt.Sprintf("photo exceeds the %dMB limit", storage.MaxPhotoFileSize/(1024*1024)))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(fileHeader.Filename)
	}
	if !storage.ValidatePhotoFileType(contentType, fileHeader.Filename) {
		response.BadRequest(c, "only jpeg, png and webp photos are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open uploaded photo failed", zap.Error(err))
		response.Internal(c, "failed to read photo")
		return
	}
	defer file.Close()

	key := storage.PhotoKey(fileHeader.Filename)
	location, err := h.s3.Upload(c.Request.Context(), h.s3.GalleryBucket(), key, contentType, file, fileHeader.Size)
	if err != nil {
		h.logger.Error("upload photo failed", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to upload photo")
		return
	}

	response.Created(c, gin.H{"key": key, "location": location})
}

// Delete handles DELETE /api/admin/gallery/:key. The key path parameter is
// the object key without the photos/ prefix.
func (h *Handler) Delete(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "photo gallery is not configured")
		return
	}
	name := c.Param("key")
	if name == "" {
		response.BadRequest(c, "photo key is required")
		return
	}
	key := storage.FolderPhotos + "/" + name
	if err := h.s3.DeleteObject(c.Request.Context(), h.s3.GalleryBucket(), key); err != nil {
		h.logger.Error("delete photo failed", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to delete photo")
		return
	}
	response.NoContent(c)
}
