package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"justforkidz/siteapi/internal/models"
)

var (
	ErrNoFiles       = errors.New("at least one image file is required")
	ErrTitleRequired = errors.New("title is required")
)

// GalleryStore is the record side of the gallery.
type GalleryStore interface {
	List(ctx context.Context) ([]models.GalleryImage, error)
	Get(ctx context.Context, id string) (models.GalleryImage, error)
	InsertBatch(ctx context.Context, images []models.GalleryImage) error
	Update(ctx context.Context, id, title, description, url string) (models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore is the binary side of the gallery.
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
	PathFromPublicURL(publicURL string) (string, bool)
}

// OrphanRecorder receives the path of every blob the service knows it
// is leaving behind, for manual cleanup. Best effort.
type OrphanRecorder interface {
	Record(ctx context.Context, path, reason string)
}

// FileUpload is one inbound image payload. Open is called once, from
// the goroutine that uploads the file.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type GalleryService struct {
	records    GalleryStore
	blobs      BlobStore
	orphans    OrphanRecorder
	pathPrefix string
	log        zerolog.Logger
}

func NewGalleryService(records GalleryStore, blobs BlobStore, orphans OrphanRecorder, pathPrefix string, log zerolog.Logger) *GalleryService {
	return &GalleryService{
		records:    records,
		blobs:      blobs,
		orphans:    orphans,
		pathPrefix: pathPrefix,
		log:        log,
	}
}

func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	images, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// CreateFromFiles uploads every file concurrently, then commits one
// record per file as a single batch. When the shared title is empty each
// record is titled with its file's base name; a non-empty title is
// applied to the whole batch.
//
// A failed upload fails the call. Blobs already uploaded in that call
// are not removed; their paths go to the orphan recorder.
func (s *GalleryService) CreateFromFiles(ctx context.Context, files []FileUpload, title, description string) ([]models.GalleryImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	images := make([]models.GalleryImage, len(files))

	var (
		mu       sync.Mutex
		uploaded []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			objectPath := s.objectPath(file.Name)

			r, err := file.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", file.Name, err)
			}
			defer r.Close()

			if err := s.blobs.Upload(gctx, objectPath, r, file.Size, file.ContentType); err != nil {
				return fmt.Errorf("upload %s: %w", file.Name, err)
			}

			mu.Lock()
			uploaded = append(uploaded, objectPath)
			mu.Unlock()

			imageTitle := title
			if imageTitle == "" {
				imageTitle = baseTitle(file.Name)
			}

			images[i] = models.GalleryImage{
				ID:          ksuid.New().String(),
				Title:       imageTitle,
				Description: description,
				URL:         s.blobs.PublicURL(objectPath),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, p := range uploaded {
			s.orphans.Record(ctx, p, "batch upload aborted")
		}
		return nil, err
	}

	if err := s.records.InsertBatch(ctx, images); err != nil {
		for _, p := range uploaded {
			s.orphans.Record(ctx, p, "batch insert failed")
		}
		return nil, fmt.Errorf("insert gallery batch: %w", err)
	}

	s.log.Info().Int("count", len(images)).Msg("gallery images uploaded")
	return images, nil
}

// Update rewrites title, description and, when a new file is supplied,
// the URL, in one write. The replaced blob is not deleted; its path is
// recorded as an orphan.
func (s *GalleryService) Update(ctx context.Context, id, title, description string, file *FileUpload) (models.GalleryImage, error) {
	if strings.TrimSpace(title) == "" {
		return models.GalleryImage{}, ErrTitleRequired
	}

	current, err := s.records.Get(ctx, id)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("load gallery image: %w", err)
	}

	url := current.URL
	if file != nil {
		objectPath := s.objectPath(file.Name)

		r, err := file.Open()
		if err != nil {
			return models.GalleryImage{}, fmt.Errorf("open %s: %w", file.Name, err)
		}
		defer r.Close()

		if err := s.blobs.Upload(ctx, objectPath, r, file.Size, file.ContentType); err != nil {
			return models.GalleryImage{}, fmt.Errorf("upload %s: %w", file.Name, err)
		}
		url = s.blobs.PublicURL(objectPath)

		if oldPath, ok := s.blobs.PathFromPublicURL(current.URL); ok {
			s.orphans.Record(ctx, oldPath, "replaced by edit")
		} else {
			s.orphans.Record(ctx, current.URL, "replaced by edit, path underivable")
		}
	}

	updated, err := s.records.Update(ctx, id, title, description, url)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("update gallery image: %w", err)
	}
	return updated, nil
}

// Delete removes the blob first, then the record. When the URL does not
// match the known public prefix the blob cannot be located: only the
// record is deleted and the URL is recorded for audit. An empty url is
// looked up from the record.
func (s *GalleryService) Delete(ctx context.Context, id, url string) error {
	if url == "" {
		current, err := s.records.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("load gallery image: %w", err)
		}
		url = current.URL
	}

	if objectPath, ok := s.blobs.PathFromPublicURL(url); ok {
		if err := s.blobs.Remove(ctx, objectPath); err != nil {
			return fmt.Errorf("remove blob: %w", err)
		}
	} else {
		s.log.Warn().Str("image_id", id).Str("url", url).Msg("unrecognized public url, skipping blob delete")
		s.orphans.Record(ctx, url, "delete with underivable path")
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}

	s.log.Info().Str("image_id", id).Msg("gallery image deleted")
	return nil
}

func (s *GalleryService) objectPath(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return path.Join(s.pathPrefix, ksuid.New().String()+ext)
}

func baseTitle(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
