package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/models"
)

// StartCronJobs schedules the nightly reconciliation of denormalized
// rating aggregates. Review writes recompute them inline but tolerate
// failure, so this job repairs any drift.
func StartCronJobs() {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", reconcileServiceRatings)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for rating reconciliation")
}

func reconcileServiceRatings() {
	var services []models.Service
	if err := db.DB.Where("is_active = ?", true).Find(&services).Error; err != nil {
		log.Printf("Rating reconciliation: failed to list services: %v", err)
		return
	}

	repaired := 0
	for i := range services {
		if err := services[i].RecomputeRating(db.DB); err != nil {
			log.Printf("Rating reconciliation: service %d: %v", services[i].ID, err)
			continue
		}
		repaired++
	}
	log.Printf("Rating reconciliation finished: %d/%d services refreshed", repaired, len(services))
}
