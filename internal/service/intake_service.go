package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"justforkidz/siteapi/internal/intake"
	"justforkidz/siteapi/internal/models"
)

// LeadWriter is the store-side write path for inbound submissions.
type LeadWriter interface {
	Insert(ctx context.Context, lead models.Lead) (models.Lead, error)
}

// SubmitInput carries the resolved form fields plus the provenance
// captured at submission time.
type SubmitInput struct {
	Contact   intake.ContactFields
	PageURL   string
	Referrer  string
	UserAgent string
	Timezone  string
}

type IntakeService struct {
	leads LeadWriter
	log   zerolog.Logger
}

func NewIntakeService(leads LeadWriter, log zerolog.Logger) *IntakeService {
	return &IntakeService{leads: leads, log: log}
}

// Submit normalizes one form submission into a lead and makes exactly
// one insert attempt. Repeated submissions are not de-duplicated; a
// double-click yields two leads.
func (s *IntakeService) Submit(ctx context.Context, input SubmitInput) (models.Lead, error) {
	lead := models.Lead{
		ID:              ksuid.New().String(),
		ParentName:      input.Contact.ParentName,
		Email:           input.Contact.Email,
		Phone:           input.Contact.Phone,
		ChildName:       input.Contact.ChildName,
		ProgramInterest: input.Contact.ProgramInterest,
		Message:         input.Contact.Message,
		PageURL:         input.PageURL,
		Referrer:        input.Referrer,
		UserAgent:       input.UserAgent,
		Timezone:        input.Timezone,
		Status:          models.LeadStatusNew,
	}

	created, err := s.leads.Insert(ctx, lead)
	if err != nil {
		s.log.Error().Err(err).Str("page_url", input.PageURL).Msg("lead submission failed")
		return models.Lead{}, fmt.Errorf("submit lead: %w", err)
	}

	s.log.Info().Str("lead_id", created.ID).Str("program", created.ProgramInterest).Msg("lead captured")
	return created, nil
}
