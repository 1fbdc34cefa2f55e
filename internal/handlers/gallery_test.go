package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGalleryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{log: zerolog.Nop()}
	engine := gin.New()
	engine.POST("/api/v1/admin/gallery", h.UploadGalleryImages)
	return engine
}

func TestUploadGalleryImagesRequiresMultipart(t *testing.T) {
	router := newGalleryRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/gallery", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadGalleryImagesRequiresAtLeastOneFile(t *testing.T) {
	router := newGalleryRouter()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Camp Day"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/gallery", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one image")
}
