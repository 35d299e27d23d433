package models

import (
	"encoding/json"
	"time"
)

// ChangeEvent is the webhook body for one document write: the snapshot
// before and after the write, with the absent side nil on creates.
type ChangeEvent struct {
	ID     string                 `json:"id"`
	Before map[string]interface{} `json:"before"`
	After  map[string]interface{} `json:"after"`
}

type MemoryEvent struct {
	RelationshipID string `mapstructure:"relationshipId"`
	CreatedBy      string `mapstructure:"createdBy"`
	Title          string `mapstructure:"title"`
	Location       string `mapstructure:"location"`
}

type PhotoEvent struct {
	RelationshipID string `mapstructure:"relationshipId"`
	UploadedBy     string `mapstructure:"uploadedBy"`
	Title          string `mapstructure:"title"`
	Location       string `mapstructure:"location"`
}

type StorySnapshot struct {
	RelationshipID string   `mapstructure:"relationshipId"`
	CreatedBy      string   `mapstructure:"createdBy"`
	LikedBy        []string `mapstructure:"likedBy"`
}

type MessageEvent struct {
	RelationshipID string `mapstructure:"relationshipId"`
	SenderID       string `mapstructure:"senderId"`
	Text           string `mapstructure:"text"`
}

// PlanSnapshot keeps Date loosely typed; client versions have written
// it as an RFC3339 string and as epoch milliseconds.
type PlanSnapshot struct {
	RelationshipID  string      `mapstructure:"relationshipId"`
	CreatedBy       string      `mapstructure:"createdBy"`
	UpdatedBy       string      `mapstructure:"updatedBy"`
	Title           string      `mapstructure:"title"`
	Description     string      `mapstructure:"description"`
	Date            interface{} `mapstructure:"date"`
	ReminderEnabled bool        `mapstructure:"reminderEnabled"`
	IsCompleted     bool        `mapstructure:"isCompleted"`
}

// ParseDocTime accepts the date encodings seen in client documents:
// RFC3339 strings, epoch milliseconds, or an already-typed time.
func ParseDocTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			return ts, true
		}
	case float64:
		return time.UnixMilli(int64(val)).UTC(), true
	case int64:
		return time.UnixMilli(val).UTC(), true
	case json.Number:
		if ms, err := val.Int64(); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}
