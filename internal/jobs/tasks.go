package jobs

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/logging"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"gorm.io/gorm"
)

// Expirer is the part of the lifecycle service the expiry job drives.
type Expirer interface {
	Expire(ctx context.Context) (int, error)
}

// ExpirePendingTask deletes stale pending sightings on every tick and once at startup.
func ExpirePendingTask(lifecycle Expirer, interval time.Duration) Task {
	return Task{
		Name:       "expire_pending_sightings",
		Interval:   interval,
		RunAtStart: true,
		Run: func(ctx context.Context) (int64, error) {
			n, err := lifecycle.Expire(ctx)
			return int64(n), err
		},
	}
}

// PruneLogsTask removes system_logs rows older than retention.
func PruneLogsTask(db *gorm.DB, retention, interval time.Duration) Task {
	return Task{
		Name:     "prune_system_logs",
		Interval: interval,
		Run: func(ctx context.Context) (int64, error) {
			return logging.PruneSystemLogs(ctx, db, retention)
		},
	}
}

var _ Expirer = (*services.LifecycleService)(nil)
