package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"justforkidz/siteapi/internal/audit"
)

// Scheduler runs the periodic diagnostics. The only job today reports
// how many orphaned blobs are waiting for manual cleanup; nothing is
// deleted automatically.
type Scheduler struct {
	cron  *cron.Cron
	cache *redis.Client
	log   zerolog.Logger
}

func NewScheduler(cache *redis.Client, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		cache: cache,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.cache == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 6 * * *", s.reportOrphanBacklog); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) reportOrphanBacklog() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.cache.SCard(ctx, audit.OrphanSet).Result()
	if err != nil {
		s.log.Error().Err(err).Msg("orphan backlog check failed")
		return
	}

	event := s.log.Info()
	if count > 0 {
		event = s.log.Warn()
	}
	event.Int64("orphaned_blobs", count).Msg("orphan backlog")
}
