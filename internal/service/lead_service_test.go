package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justforkidz/siteapi/internal/models"
	"justforkidz/siteapi/internal/repository"
)

type fakeLeadStore struct {
	listParams  []repository.LeadListParams
	listResult  []models.Lead
	listTotal   int64
	listErr     error
	updated     map[string]models.LeadStatus
	updateErr   error
	total       int64
	fresh       int64
	recentLimit int
	recent      []models.Lead
}

func (s *fakeLeadStore) List(ctx context.Context, params repository.LeadListParams) ([]models.Lead, int64, error) {
	s.listParams = append(s.listParams, params)
	return s.listResult, s.listTotal, s.listErr
}

func (s *fakeLeadStore) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error) {
	if s.updateErr != nil {
		return models.Lead{}, s.updateErr
	}
	if s.updated == nil {
		s.updated = make(map[string]models.LeadStatus)
	}
	s.updated[id] = status
	return models.Lead{ID: id, Status: status}, nil
}

func (s *fakeLeadStore) CountSummary(ctx context.Context) (int64, int64, error) {
	return s.total, s.fresh, nil
}

func (s *fakeLeadStore) Recent(ctx context.Context, limit int) ([]models.Lead, error) {
	s.recentLimit = limit
	return s.recent, nil
}

func TestListPassesOffsetPagination(t *testing.T) {
	store := &fakeLeadStore{listTotal: 15}
	svc := NewLeadService(store, zerolog.Nop())

	_, err := svc.List(context.Background(), "new", "dana", 2)
	require.NoError(t, err)

	require.Len(t, store.listParams, 1)
	params := store.listParams[0]
	assert.Equal(t, "new", params.Status)
	assert.Equal(t, "dana", params.Search)
	assert.Equal(t, LeadPageSize, params.Limit)
	assert.Equal(t, LeadPageSize, params.Offset)
}

func TestListClampsPageToOne(t *testing.T) {
	store := &fakeLeadStore{}
	svc := NewLeadService(store, zerolog.Nop())

	page, err := svc.List(context.Background(), "all", "", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, store.listParams[0].Offset)
}

func TestListComputesTotalPages(t *testing.T) {
	store := &fakeLeadStore{listTotal: 15}
	svc := NewLeadService(store, zerolog.Nop())

	page, err := svc.List(context.Background(), "all", "", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListSurfacesStoreError(t *testing.T) {
	store := &fakeLeadStore{listErr: errors.New("store down")}
	svc := NewLeadService(store, zerolog.Nop())

	_, err := svc.List(context.Background(), "all", "", 1)
	assert.Error(t, err)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	store := &fakeLeadStore{}
	svc := NewLeadService(store, zerolog.Nop())

	for _, status := range []models.LeadStatus{
		models.LeadStatusContacted,
		models.LeadStatusNew,
		models.LeadStatusClosed,
		models.LeadStatusConverted,
	} {
		lead, err := svc.UpdateStatus(context.Background(), "lead1", status)
		require.NoError(t, err)
		assert.Equal(t, status, lead.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	store := &fakeLeadStore{}
	svc := NewLeadService(store, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), "lead1", "archived")
	require.Error(t, err)
	assert.Empty(t, store.updated)
}

func TestSummaryConvertedIsPlaceholderZero(t *testing.T) {
	store := &fakeLeadStore{
		total:  20,
		fresh:  15,
		recent: []models.Lead{{ID: "a"}, {ID: "b"}},
	}
	svc := NewLeadService(store, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(20), summary.Total)
	assert.Equal(t, int64(15), summary.New)
	assert.Equal(t, int64(0), summary.Converted)
	assert.Len(t, summary.Recent, 2)
	assert.Equal(t, 5, store.recentLimit)
}
