package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"justforkidz/siteapi/internal/intake"
	"justforkidz/siteapi/internal/service"
)

const submitFailedMessage = "There was an error submitting your inquiry. Please try again."

// SubmitLead is the public intake endpoint. It accepts the form either
// JSON- or form-encoded and tolerates inconsistent control naming via
// the intake resolver. One insert attempt per submission, no retry,
// no de-duplication.
func (h HandlerSet) SubmitLead(c *gin.Context) {
	values, err := submissionValues(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable submission"})
		return
	}

	contact := intake.Resolve(values)
	if contact.Empty() {
		h.log.Warn().Str("page_url", values.Get("page_url")).Msg("submission with no recognizable fields")
	}

	pageURL := strings.TrimSpace(values.Get("page_url"))
	if pageURL == "" {
		pageURL = c.GetHeader("Referer")
	}
	userAgent := strings.TrimSpace(values.Get("user_agent"))
	if userAgent == "" {
		userAgent = c.GetHeader("User-Agent")
	}

	lead, err := h.intake.Submit(c.Request.Context(), service.SubmitInput{
		Contact:   contact,
		PageURL:   pageURL,
		Referrer:  strings.TrimSpace(values.Get("referrer")),
		UserAgent: userAgent,
		Timezone:  strings.TrimSpace(values.Get("timezone")),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": submitFailedMessage})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      lead.ID,
		"message": "Thank you! We have received your inquiry.",
	})
}

func submissionValues(c *gin.Context) (url.Values, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		values := make(url.Values, len(body))
		for key, raw := range body {
			switch v := raw.(type) {
			case string:
				values.Set(key, v)
			case nil:
			default:
				values.Set(key, fmt.Sprint(v))
			}
		}
		return values, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}
