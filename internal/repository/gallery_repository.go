package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"justforkidz/siteapi/internal/models"
)

var ErrImageNotFound = errors.New("gallery image not found")

type GalleryRepository struct {
	pool *pgxpool.Pool
}

func NewGalleryRepository(pool *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{pool: pool}
}

func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryImage, error) {
	const query = `
		SELECT id, title, COALESCE(description, ''), url, created_at
		FROM gallery_images
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.GalleryImage
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.Description, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *GalleryRepository) Get(ctx context.Context, id string) (models.GalleryImage, error) {
	const query = `
		SELECT id, title, COALESCE(description, ''), url, created_at
		FROM gallery_images
		WHERE id = $1
	`

	var img models.GalleryImage
	row := r.pool.QueryRow(ctx, query, id)
	if err := row.Scan(&img.ID, &img.Title, &img.Description, &img.URL, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryImage{}, ErrImageNotFound
		}
		return models.GalleryImage{}, err
	}
	return img, nil
}

// InsertBatch stages one insert per image and commits them in a single
// round trip. An upload batch becomes visible as a whole.
func (r *GalleryRepository) InsertBatch(ctx context.Context, images []models.GalleryImage) error {
	const query = `
		INSERT INTO gallery_images (id, title, description, url)
		VALUES ($1, $2, NULLIF($3, ''), $4)
	`

	batch := &pgx.Batch{}
	for _, img := range images {
		batch.Queue(query, img.ID, img.Title, img.Description, img.URL)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range images {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert gallery image: %w", err)
		}
	}
	return results.Close()
}

func (r *GalleryRepository) Update(ctx context.Context, id, title, description, url string) (models.GalleryImage, error) {
	const query = `
		UPDATE gallery_images
		SET title = $2, description = NULLIF($3, ''), url = $4
		WHERE id = $1
		RETURNING id, title, COALESCE(description, ''), url, created_at
	`

	var img models.GalleryImage
	row := r.pool.QueryRow(ctx, query, id, title, description, url)
	if err := row.Scan(&img.ID, &img.Title, &img.Description, &img.URL, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryImage{}, ErrImageNotFound
		}
		return models.GalleryImage{}, err
	}
	return img, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
