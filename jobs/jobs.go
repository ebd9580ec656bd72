// Package jobs holds the scheduled maintenance work.
package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/models"
)

// Start schedules the nightly retention prune when retentionMonths > 0 and
// returns the running scheduler (nil when nothing was scheduled). loc is the
// region timezone.
func Start(db *gorm.DB, loc *time.Location, retentionMonths int) *cron.Cron {
	if retentionMonths <= 0 {
		return nil
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc("15 3 * * *", func() {
		if n, err := PruneOldEvents(db, time.Now().In(loc), retentionMonths); err != nil {
			log.Printf("[jobs] prune events failed: %v", err)
		} else if n > 0 {
			log.Printf("[jobs] pruned %d events older than %d months", n, retentionMonths)
		}
	}); err != nil {
		log.Printf("[jobs] schedule prune failed: %v", err)
		return nil
	}
	c.Start()
	return c
}

// PruneOldEvents deletes events dated strictly before today minus
// retentionMonths and returns the number of rows removed.
func PruneOldEvents(db *gorm.DB, today time.Time, retentionMonths int) (int64, error) {
	cutoff := today.AddDate(0, -retentionMonths, 0).Format("2006-01-02")
	tx := db.Delete(&models.Event{}, "date < ?", cutoff)
	return tx.RowsAffected, tx.Error
}
