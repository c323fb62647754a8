package scheduler

import (
	"log"

	"github.com/etlasneha/greenzone/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Start runs the daily notification expiry in the background and returns
// the cron instance so callers can stop it on shutdown.
func Start(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		deleted, err := services.DeleteOldNotifications(db, services.NotificationMaxAge)
		if err != nil {
			log.Printf("Notification cleanup failed: %v", err)
			return
		}
		log.Printf("Notification cleanup removed %d old notifications", deleted)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Notification cleanup scheduler started")
	return c
}
