package repository

import (
	"time"

	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// How far ahead the hourly sweep looks for due plans
	planReminderWindow = 6 * time.Hour
	// Back-pressure bound; excess due plans wait for the next run
	planSweepLimit = 200
)

type PlanRepo struct {
	DB *gorm.DB
}

// DueForReminder returns enabled, incomplete plans starting within the
// reminder window, soonest first.
func (repo *PlanRepo) DueForReminder(now time.Time) ([]dbmodels.Plan, error) {
	var plans []dbmodels.Plan
	err := repo.DB.
		Where("reminder_enabled = ?", true).
		Where("is_completed = ?", false).
		Where("date >= ? AND date <= ?", now, now.Add(planReminderWindow)).
		Order("date asc").
		Limit(planSweepLimit).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *PlanRepo) MarkReminderSent(id uuid.UUID, at time.Time) error {
	return repo.DB.Model(&dbmodels.Plan{}).Where("id = ?", id).Update("reminder_last_sent_at", at).Error
}
