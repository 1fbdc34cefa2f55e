package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"justforkidz/siteapi/internal/models"
	"justforkidz/siteapi/internal/repository"
)

func (h HandlerSet) ListLeads(c *gin.Context) {
	filter := c.DefaultQuery("status", "all")
	search := c.Query("search")

	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	result, err := h.leads.List(c.Request.Context(), filter, search, page)
	if err != nil {
		h.log.Error().Err(err).Msg("list leads failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}

	if result.Leads == nil {
		result.Leads = []models.Lead{}
	}
	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required,oneof=new contacted converted closed"`
}

func (h HandlerSet) UpdateLeadStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	lead, err := h.leads.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		h.log.Error().Err(err).Str("lead_id", c.Param("id")).Msg("update lead status failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

func (h HandlerSet) Summary(c *gin.Context) {
	summary, err := h.leads.Summary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("lead summary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}

	if summary.Recent == nil {
		summary.Recent = []models.Lead{}
	}
	c.JSON(http.StatusOK, summary)
}
