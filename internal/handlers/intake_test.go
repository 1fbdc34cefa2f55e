package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justforkidz/siteapi/internal/models"
	"justforkidz/siteapi/internal/service"
)

type captureLeadWriter struct {
	inserted []models.Lead
	err      error
}

func (w *captureLeadWriter) Insert(ctx context.Context, lead models.Lead) (models.Lead, error) {
	w.inserted = append(w.inserted, lead)
	if w.err != nil {
		return models.Lead{}, w.err
	}
	return lead, nil
}

func newIntakeRouter(writer *captureLeadWriter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{
		log:    zerolog.Nop(),
		intake: service.NewIntakeService(writer, zerolog.Nop()),
	}
	engine := gin.New()
	engine.POST("/api/v1/leads", h.SubmitLead)
	return engine
}

func TestSubmitLeadJSON(t *testing.T) {
	writer := &captureLeadWriter{}
	router := newIntakeRouter(writer)

	body := `{
		"parent_name": "Dana",
		"email": "a@b.com",
		"page_url": "https://site.example/enroll",
		"referrer": "https://google.com",
		"user_agent": "TestBrowser/1.0",
		"timezone": "Europe/Berlin"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, writer.inserted, 1)
	lead := writer.inserted[0]
	assert.Equal(t, "Dana", lead.ParentName)
	assert.Equal(t, "a@b.com", lead.Email)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, "https://site.example/enroll", lead.PageURL)
	assert.Equal(t, "TestBrowser/1.0", lead.UserAgent)
	assert.Equal(t, "Europe/Berlin", lead.Timezone)
}

func TestSubmitLeadFormEncodedWithHeaderFallbacks(t *testing.T) {
	writer := &captureLeadWriter{}
	router := newIntakeRouter(writer)

	form := url.Values{}
	form.Set("email", "a@b.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://site.example/enroll")
	req.Header.Set("User-Agent", "TestBrowser/1.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, writer.inserted, 1)
	lead := writer.inserted[0]
	assert.Equal(t, "a@b.com", lead.Email)
	assert.Empty(t, lead.ParentName)
	assert.Equal(t, "https://site.example/enroll", lead.PageURL, "page_url falls back to Referer")
	assert.Equal(t, "TestBrowser/1.0", lead.UserAgent)
}

func TestSubmitLeadInsertFailure(t *testing.T) {
	writer := &captureLeadWriter{err: errors.New("store down")}
	router := newIntakeRouter(writer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Please try again")
	assert.Len(t, writer.inserted, 1, "no automatic retry")
}

func TestSubmitLeadMalformedJSON(t *testing.T) {
	writer := &captureLeadWriter{}
	router := newIntakeRouter(writer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, writer.inserted)
}
