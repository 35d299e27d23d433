package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/adilemreee/sevgilim-sub001/models"
)

const (
	bodySeparator = " • "

	// Message bodies longer than this are cut to the truncated length
	// plus an ellipsis
	maxMessageBodyRunes = 120
	truncatedBodyRunes  = 117

	defaultMemoryBody   = "They saved a new moment for the two of you."
	defaultPhotoBody    = "Open the app to take a look."
	storyBody           = "Watch it before it expires."
	storyLikeBody       = "Open the app to see your story."
	defaultMessageBody  = "Sent a photo"
	defaultPlanBody     = "Open the app to see the details."
	planReminderTitle   = "Upcoming plan"
	specialDayTitle     = "A special day is coming up"
	defaultReminderBody = "You have something coming up."
	fallbackPartnerName = "Your partner"
)

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return fallbackPartnerName
	}
	return name
}

// joinParts joins the non-empty parts with the body separator.
func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, bodySeparator)
}

// orDefault guards the rule that a notification never ships an empty
// body.
func orDefault(body string, fallback string) string {
	if body == "" {
		return fallback
	}
	return body
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// TruncateBody caps a body at the maximum rune length; longer bodies
// keep the leading runes plus an ellipsis.
func TruncateBody(body string) string {
	runes := []rune(body)
	if len(runes) <= maxMessageBodyRunes {
		return body
	}
	return string(runes[:truncatedBodyRunes]) + "…"
}

// FormatPlanDate renders a plan instant for notification bodies.
func FormatPlanDate(date time.Time) string {
	return date.Format("Mon, Jan 2 at 3:04 PM")
}

// TimeUntilPhrase rounds the remaining time to the nearest sensible
// unit. A non-positive delta reads as "very soon".
func TimeUntilPhrase(now, date time.Time) string {
	delta := date.Sub(now)
	if delta <= 0 {
		return "very soon"
	}
	if delta < time.Hour {
		minutes := int(delta.Round(time.Minute) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("in %d %s", minutes, plural(minutes, "minute"))
	}
	if delta < 24*time.Hour {
		hours := int(delta.Round(time.Hour) / time.Hour)
		return fmt.Sprintf("in %d %s", hours, plural(hours, "hour"))
	}
	days := int(delta.Round(24*time.Hour) / (24 * time.Hour))
	return fmt.Sprintf("in %d %s", days, plural(days, "day"))
}

func ComposeMemoryNew(actorName, title, location, relationshipID string) *models.Notification {
	return &models.Notification{
		Title: fmt.Sprintf("%s added a new memory", displayName(actorName)),
		Body:  orDefault(joinParts(title, location), defaultMemoryBody),
		Data:  map[string]interface{}{"type": "memory_new", "relationshipId": relationshipID},
	}
}

func ComposePhotoNew(actorName, title, location, relationshipID string) *models.Notification {
	return &models.Notification{
		Title: fmt.Sprintf("%s added a new photo", displayName(actorName)),
		Body:  orDefault(joinParts(title, location), defaultPhotoBody),
		Data:  map[string]interface{}{"type": "photo_new", "relationshipId": relationshipID},
	}
}

func ComposeStoryNew(actorName, relationshipID string) *models.Notification {
	return &models.Notification{
		Title: fmt.Sprintf("%s shared a new story", displayName(actorName)),
		Body:  storyBody,
		Data:  map[string]interface{}{"type": "story_new", "relationshipId": relationshipID},
	}
}

func ComposeStoryLike(likerName, storyID string) *models.Notification {
	return &models.Notification{
		Title: fmt.Sprintf("%s liked your story", displayName(likerName)),
		Body:  storyLikeBody,
		Data:  map[string]interface{}{"type": "story_like", "storyId": storyID},
	}
}

func ComposeMessageNew(senderName, text, relationshipID string) *models.Notification {
	return &models.Notification{
		Title: fmt.Sprintf("%s sent you a message", displayName(senderName)),
		Body:  TruncateBody(orDefault(strings.TrimSpace(text), defaultMessageBody)),
		Data:  map[string]interface{}{"type": "message_new", "relationshipId": relationshipID},
	}
}

func ComposePlanNew(creatorName, title string, date time.Time, hasDate bool, relationshipID string) *models.Notification {
	formatted := ""
	if hasDate {
		formatted = FormatPlanDate(date)
	}
	return &models.Notification{
		Title: fmt.Sprintf("%s added a new plan", displayName(creatorName)),
		Body:  orDefault(joinParts(title, formatted), defaultPlanBody),
		Data:  map[string]interface{}{"type": "plan_new", "relationshipId": relationshipID},
	}
}

// PlanChanges compares the tracked plan fields and describes each
// change with a short phrase. An empty result means nothing worth
// notifying changed.
func PlanChanges(before, after *models.PlanSnapshot) []string {
	changes := []string{}
	if before.Title != after.Title {
		changes = append(changes, "new title")
	}
	beforeDate, beforeOK := models.ParseDocTime(before.Date)
	afterDate, afterOK := models.ParseDocTime(after.Date)
	if beforeOK != afterOK || (beforeOK && !beforeDate.Equal(afterDate)) {
		changes = append(changes, "rescheduled")
	}
	if before.Description != after.Description {
		changes = append(changes, "details changed")
	}
	if before.IsCompleted != after.IsCompleted {
		if after.IsCompleted {
			changes = append(changes, "marked completed")
		} else {
			changes = append(changes, "reopened")
		}
	}
	if before.ReminderEnabled != after.ReminderEnabled {
		if after.ReminderEnabled {
			changes = append(changes, "reminder turned on")
		} else {
			changes = append(changes, "reminder turned off")
		}
	}
	return changes
}

// ComposePlanUpdate returns nil when no tracked field changed; the
// event then produces no notification at all.
func ComposePlanUpdate(title string, changes []string, relationshipID string) *models.Notification {
	if len(changes) == 0 {
		return nil
	}
	header := "Plan updated"
	if strings.TrimSpace(title) != "" {
		header = fmt.Sprintf("Plan updated: %s", title)
	}
	return &models.Notification{
		Title: header,
		Body:  strings.Join(changes, bodySeparator),
		Data:  map[string]interface{}{"type": "plan_update", "relationshipId": relationshipID},
	}
}

func ComposePlanReminder(title string, date time.Time, now time.Time, relationshipID string) *models.Notification {
	return &models.Notification{
		Title: planReminderTitle,
		Body:  orDefault(joinParts(title, TimeUntilPhrase(now, date), FormatPlanDate(date)), defaultReminderBody),
		Data:  map[string]interface{}{"type": "plan_reminder", "relationshipId": relationshipID},
	}
}

func ComposeSpecialDayReminder(title string, daysUntil int, relationshipID string) *models.Notification {
	countdown := "Today"
	if daysUntil > 0 {
		countdown = fmt.Sprintf("%d %s left", daysUntil, plural(daysUntil, "day"))
	}
	return &models.Notification{
		Title: specialDayTitle,
		Body:  orDefault(joinParts(title, countdown), defaultReminderBody),
		Data:  map[string]interface{}{"type": "special_day_reminder", "relationshipId": relationshipID},
	}
}
