package utils

import (
	"log"
	"skillfund/config"
	"skillfund/database"
	"skillfund/models"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the stale pending-request digest
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge admins about stale pending requests
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily pending-request check...")
		ProcessStalePendingRequests()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs daily at 9 AM")
}

// ProcessStalePendingRequests emails the admin a digest of requests that
// have been pending for more than 7 days
func ProcessStalePendingRequests() {
	if config.AppConfig.AdminEmail == "" {
		log.Println("[REMINDER-SCHEDULER] ADMIN_EMAIL not set, skipping digest")
		return
	}

	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	var stale []models.FundingRequest
	if err := db.
		Where("status = ? AND created_at < ? AND is_deleted = false", models.RequestStatusPending, cutoff).
		Order("created_at ASC").
		Find(&stale).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching stale requests: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Println("[REMINDER-SCHEDULER] No stale pending requests")
		return
	}

	oldest := stale[0].CreatedAt.Format("2006-01-02")
	log.Printf("[REMINDER-SCHEDULER] Found %d stale pending requests, oldest from %s", len(stale), oldest)

	SendPendingDigestEmail(config.AppConfig.AdminEmail, len(stale), oldest)
}
