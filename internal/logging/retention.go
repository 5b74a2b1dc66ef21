package logging

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
	"gorm.io/gorm"
)

// PruneSystemLogs deletes system_logs rows older than retention and
// returns how many were removed.
func PruneSystemLogs(ctx context.Context, db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
