package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"justforkidz/siteapi/internal/models"
	"justforkidz/siteapi/internal/repository"
	"justforkidz/siteapi/internal/service"
)

// PublicGallery is the read-only feed the website widget renders.
func (h HandlerSet) PublicGallery(c *gin.Context) {
	images, err := h.gallery.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("public gallery fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gallery"})
		return
	}

	if images == nil {
		images = []models.GalleryImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h HandlerSet) ListGalleryImages(c *gin.Context) {
	h.PublicGallery(c)
}

func (h HandlerSet) UploadGalleryImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image file is required"})
		return
	}

	files := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		files = append(files, fileUpload(header))
	}

	images, err := h.gallery.CreateFromFiles(
		c.Request.Context(),
		files,
		c.PostForm("title"),
		c.PostForm("description"),
	)
	if err != nil {
		h.log.Error().Err(err).Int("files", len(files)).Msg("gallery upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"images": images})
}

func (h HandlerSet) UpdateGalleryImage(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")

	var file *service.FileUpload
	if header, err := c.FormFile("image"); err == nil {
		f := fileUpload(header)
		file = &f
	}

	image, err := h.gallery.Update(c.Request.Context(), c.Param("id"), title, description, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		case errors.Is(err, repository.ErrImageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		default:
			h.log.Error().Err(err).Str("image_id", c.Param("id")).Msg("gallery update failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

func (h HandlerSet) DeleteGalleryImage(c *gin.Context) {
	if err := h.gallery.Delete(c.Request.Context(), c.Param("id"), c.Query("url")); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		h.log.Error().Err(err).Str("image_id", c.Param("id")).Msg("gallery delete failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "delete failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

func fileUpload(header *multipart.FileHeader) service.FileUpload {
	return service.FileUpload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}
