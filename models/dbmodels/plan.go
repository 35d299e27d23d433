package dbmodels

import "time"

// Plan is a scheduled activity for a relationship. ReminderLastSentAt
// is the idempotency marker for the hourly reminder sweep; nil means
// never reminded.
type Plan struct {
	Base
	RelationshipID     string     `json:"relationship_id" gorm:"index"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Date               time.Time  `json:"date" gorm:"index"`
	ReminderEnabled    bool       `json:"reminder_enabled"`
	IsCompleted        bool       `json:"is_completed"`
	ReminderLastSentAt *time.Time `json:"reminder_last_sent_at"`
}
