package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"justforkidz/siteapi/internal/models"
	"justforkidz/siteapi/internal/repository"
)

// LeadPageSize is the fixed page size of the admin leads table.
const LeadPageSize = 10

const recentLeadLimit = 5

// LeadStore is the read/update surface the admin app needs for leads.
type LeadStore interface {
	List(ctx context.Context, params repository.LeadListParams) ([]models.Lead, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error)
	CountSummary(ctx context.Context) (total, fresh int64, err error)
	Recent(ctx context.Context, limit int) ([]models.Lead, error)
}

type LeadPage struct {
	Leads      []models.Lead `json:"leads"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

type LeadSummary struct {
	Total int64 `json:"total"`
	New   int64 `json:"new"`
	// Conversion tracking is not wired up yet; the dashboard shows a
	// placeholder zero.
	Converted int64         `json:"converted"`
	Recent    []models.Lead `json:"recent"`
}

type LeadService struct {
	leads LeadStore
	log   zerolog.Logger
}

func NewLeadService(leads LeadStore, log zerolog.Logger) *LeadService {
	return &LeadService{leads: leads, log: log}
}

// List returns one page of leads, newest first. filter is a status or
// "all"; search matches email or phone as a case-insensitive substring.
func (s *LeadService) List(ctx context.Context, filter, search string, page int) (LeadPage, error) {
	if page < 1 {
		page = 1
	}

	leads, total, err := s.leads.List(ctx, repository.LeadListParams{
		Status: filter,
		Search: search,
		Limit:  LeadPageSize,
		Offset: (page - 1) * LeadPageSize,
	})
	if err != nil {
		return LeadPage{}, fmt.Errorf("list leads: %w", err)
	}

	totalPages := int((total + LeadPageSize - 1) / LeadPageSize)
	return LeadPage{
		Leads:      leads,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus sets a lead's status. Any transition is allowed; there
// is deliberately no prior-state check.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error) {
	if !status.Valid() {
		return models.Lead{}, fmt.Errorf("invalid lead status %q", status)
	}

	lead, err := s.leads.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.Lead{}, fmt.Errorf("update lead status: %w", err)
	}

	s.log.Info().Str("lead_id", id).Str("status", string(status)).Msg("lead status updated")
	return lead, nil
}

// Summary returns the dashboard counters plus the most recent leads.
func (s *LeadService) Summary(ctx context.Context) (LeadSummary, error) {
	total, fresh, err := s.leads.CountSummary(ctx)
	if err != nil {
		return LeadSummary{}, fmt.Errorf("count leads: %w", err)
	}

	recent, err := s.leads.Recent(ctx, recentLeadLimit)
	if err != nil {
		return LeadSummary{}, fmt.Errorf("recent leads: %w", err)
	}

	return LeadSummary{
		Total:     total,
		New:       fresh,
		Converted: 0,
		Recent:    recent,
	}, nil
}
