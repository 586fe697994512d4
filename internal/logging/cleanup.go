package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup deletes system_logs older than retention once at start and then daily.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		PurgeLogs(db, time.Now().Add(-retention))
		for {
			select {
			case <-ticker.C:
				PurgeLogs(db, time.Now().Add(-retention))
			case <-done:
				return
			}
		}
	}()
}

// PurgeLogs deletes every system log recorded before cutoff.
func PurgeLogs(db *gorm.DB, cutoff time.Time) int64 {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}
