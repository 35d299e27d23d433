package repository

import (
	"time"

	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Back-pressure bound for the daily sweep
const specialDaySweepLimit = 500

type SpecialDayRepo struct {
	DB *gorm.DB
}

// All returns the special-day records the daily sweep considers. The
// occurrence window math happens in the sweeper, not the query, since
// recurring dates cannot be compared in SQL without re-anchoring.
func (repo *SpecialDayRepo) All() ([]dbmodels.SpecialDay, error) {
	var days []dbmodels.SpecialDay
	if err := repo.DB.Limit(specialDaySweepLimit).Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *SpecialDayRepo) MarkReminded(id uuid.UUID, key string, at time.Time) error {
	return repo.DB.Model(&dbmodels.SpecialDay{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_reminder_key": key,
		"last_reminder_at":  at,
	}).Error
}
