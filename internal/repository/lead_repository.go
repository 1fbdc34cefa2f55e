package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"justforkidz/siteapi/internal/models"
)

var ErrLeadNotFound = errors.New("lead not found")

const leadColumns = `
	id,
	COALESCE(parent_name, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(child_name, ''), COALESCE(program_interest, ''), COALESCE(message, ''),
	COALESCE(page_url, ''), COALESCE(referrer, ''), COALESCE(user_agent, ''),
	COALESCE(timezone, ''), status, created_at
`

type LeadListParams struct {
	// Status filters to an exact status; empty or "all" means no filter.
	Status string
	// Search matches email or phone as a case-insensitive substring.
	Search string
	Limit  int
	Offset int
}

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Insert stores a new lead. Empty optional fields are persisted as NULL;
// created_at is assigned by the database and returned on the record.
func (r *LeadRepository) Insert(ctx context.Context, lead models.Lead) (models.Lead, error) {
	const query = `
		INSERT INTO leads (
			id, parent_name, email, phone, child_name, program_interest, message,
			page_url, referrer, user_agent, timezone, status
		) VALUES (
			$1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
			NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), NULLIF($11, ''), $12
		)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		lead.ID,
		lead.ParentName,
		lead.Email,
		lead.Phone,
		lead.ChildName,
		lead.ProgramInterest,
		lead.Message,
		lead.PageURL,
		lead.Referrer,
		lead.UserAgent,
		lead.Timezone,
		lead.Status,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return models.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

// List returns one page of leads newest-first plus the total number of
// rows matching the filter, for pagination.
func (r *LeadRepository) List(ctx context.Context, params LeadListParams) ([]models.Lead, int64, error) {
	query := `
		SELECT ` + leadColumns + `, COUNT(*) OVER() AS total
		FROM leads
		WHERE ($1 = '' OR $1 = 'all' OR status = $1)
		  AND ($2 = '' OR email ILIKE '%' || $2 || '%' OR phone ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		leads []models.Lead
		total int64
	)
	for rows.Next() {
		var lead models.Lead
		if err := scanLead(rows, &lead, &total); err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if leads == nil {
		// The windowed count vanishes with an empty page; count separately
		// so page numbers past the end still report the right total.
		if err := r.countFiltered(ctx, params, &total); err != nil {
			return nil, 0, err
		}
	}
	return leads, total, nil
}

func (r *LeadRepository) countFiltered(ctx context.Context, params LeadListParams, total *int64) error {
	const query = `
		SELECT COUNT(*)
		FROM leads
		WHERE ($1 = '' OR $1 = 'all' OR status = $1)
		  AND ($2 = '' OR email ILIKE '%' || $2 || '%' OR phone ILIKE '%' || $2 || '%')
	`
	return r.pool.QueryRow(ctx, query, params.Status, params.Search).Scan(total)
}

// UpdateStatus sets the status unconditionally; any transition is
// allowed. Returns the updated record.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (models.Lead, error) {
	query := `
		UPDATE leads SET status = $2
		WHERE id = $1
		RETURNING ` + leadColumns

	var lead models.Lead
	row := r.pool.QueryRow(ctx, query, id, status)
	if err := scanLead(row, &lead, nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lead{}, ErrLeadNotFound
		}
		return models.Lead{}, err
	}
	return lead, nil
}

// CountSummary returns the total number of leads and how many still
// have status 'new'.
func (r *LeadRepository) CountSummary(ctx context.Context) (total, fresh int64, err error) {
	const query = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'new')
		FROM leads
	`
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &fresh); err != nil {
		return 0, 0, err
	}
	return total, fresh, nil
}

// Recent returns the latest leads for the dashboard feed.
func (r *LeadRepository) Recent(ctx context.Context, limit int) ([]models.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := scanLead(rows, &lead, nil); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func scanLead(row pgx.Row, lead *models.Lead, total *int64) error {
	dest := []any{
		&lead.ID,
		&lead.ParentName,
		&lead.Email,
		&lead.Phone,
		&lead.ChildName,
		&lead.ProgramInterest,
		&lead.Message,
		&lead.PageURL,
		&lead.Referrer,
		&lead.UserAgent,
		&lead.Timezone,
		&lead.Status,
		&lead.CreatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	return row.Scan(dest...)
}
