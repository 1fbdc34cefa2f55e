package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justforkidz/siteapi/internal/intake"
	"justforkidz/siteapi/internal/models"
)

type fakeLeadWriter struct {
	inserted []models.Lead
	err      error
}

func (w *fakeLeadWriter) Insert(ctx context.Context, lead models.Lead) (models.Lead, error) {
	w.inserted = append(w.inserted, lead)
	if w.err != nil {
		return models.Lead{}, w.err
	}
	return lead, nil
}

func TestSubmitCreatesLeadWithStatusNewAndProvenance(t *testing.T) {
	writer := &fakeLeadWriter{}
	svc := NewIntakeService(writer, zerolog.Nop())

	lead, err := svc.Submit(context.Background(), SubmitInput{
		Contact:   intake.ContactFields{Email: "a@b.com"},
		PageURL:   "https://justforkidz.example/enroll",
		Referrer:  "https://google.com",
		UserAgent: "Mozilla/5.0",
		Timezone:  "Europe/Berlin",
	})
	require.NoError(t, err)

	require.Len(t, writer.inserted, 1, "exactly one insert attempt")
	stored := writer.inserted[0]
	assert.Equal(t, models.LeadStatusNew, stored.Status)
	assert.Equal(t, "a@b.com", stored.Email)
	assert.Empty(t, stored.ParentName)
	assert.Equal(t, "https://justforkidz.example/enroll", stored.PageURL)
	assert.Equal(t, "https://google.com", stored.Referrer)
	assert.Equal(t, "Mozilla/5.0", stored.UserAgent)
	assert.Equal(t, "Europe/Berlin", stored.Timezone)
	assert.NotEmpty(t, lead.ID)
}

func TestSubmitAssignsDistinctIDs(t *testing.T) {
	writer := &fakeLeadWriter{}
	svc := NewIntakeService(writer, zerolog.Nop())

	first, err := svc.Submit(context.Background(), SubmitInput{})
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), SubmitInput{})
	require.NoError(t, err)

	// double submissions are two leads; no de-duplication
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, writer.inserted, 2)
}

func TestSubmitDoesNotRetryOnFailure(t *testing.T) {
	writer := &fakeLeadWriter{err: errors.New("store rejected")}
	svc := NewIntakeService(writer, zerolog.Nop())

	_, err := svc.Submit(context.Background(), SubmitInput{
		Contact: intake.ContactFields{Email: "a@b.com"},
	})
	require.Error(t, err)
	assert.Len(t, writer.inserted, 1, "a failed insert is not retried")
}
