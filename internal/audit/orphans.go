// Package audit keeps a trail of orphaned blobs. Nothing here
// reconciles anything; the trail exists so an operator can clean the
// bucket up by hand.
package audit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// OrphanStream receives one entry per blob the gallery service
	// leaves behind (failed batch, replaced image, underivable URL).
	OrphanStream = "gallery:orphans"
	// OrphanSet accumulates the distinct paths for manual cleanup.
	OrphanSet = "gallery:orphans:paths"
)

// Recorder publishes orphaned blob paths to the audit stream. All
// failures are logged and swallowed; auditing never fails the
// operation that produced the orphan.
type Recorder struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRecorder(client *redis.Client, log zerolog.Logger) *Recorder {
	return &Recorder{client: client, log: log}
}

func (r *Recorder) Record(ctx context.Context, path, reason string) {
	r.log.Warn().Str("path", path).Str("reason", reason).Msg("orphaned blob")

	if r.client == nil {
		return
	}
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: OrphanStream,
		Values: map[string]any{
			"path":   path,
			"reason": reason,
			"at":     time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("orphan audit publish failed")
	}
}
