package dbmodels

import "time"

// SpecialDay is an anniversary-style date, optionally recurring every
// year. LastReminderKey holds the ISO date of the last occurrence that
// was reminded about; it is the sole dedupe guard for the daily sweep.
type SpecialDay struct {
	Base
	RelationshipID  string     `json:"relationship_id" gorm:"index"`
	Title           string     `json:"title"`
	Date            time.Time  `json:"date"`
	IsRecurring     bool       `json:"is_recurring"`
	LastReminderKey *string    `json:"last_reminder_key"`
	LastReminderAt  *time.Time `json:"last_reminder_at"`
}
