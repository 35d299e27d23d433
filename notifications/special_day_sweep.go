package notifications

import (
	"time"

	"k8s.io/klog/v2"
)

// How many days ahead the daily sweep reminds about
const specialDayHorizonDays = 7

// SweepSpecialDays is the daily scan over special-day records. It
// returns how many reminders were dispatched.
func (s *Service) SweepSpecialDays(now time.Time) (int, error) {
	days, err := s.SpecialDays.All()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, day := range days {
		occurrence, daysUntil, ok := NextOccurrence(day.Date, day.IsRecurring, now)
		if !ok {
			continue
		}
		key := ReminderKey(occurrence)
		// One reminder per occurrence per year, no matter how often
		// the sweep runs around the window.
		if day.LastReminderKey != nil && *day.LastReminderKey == key {
			continue
		}
		rel, err := s.Relationships.Get(day.RelationshipID)
		if err != nil {
			klog.Errorf("Error resolving relationship for special day %s: %v", day.ID, err)
			continue
		}
		if rel == nil {
			continue
		}
		n := ComposeSpecialDayReminder(day.Title, daysUntil, day.RelationshipID)
		if _, err := s.deliver(recipientsExcept(rel, ""), n); err != nil {
			klog.Errorf("Error dispatching special day reminder %s: %v", day.ID, err)
			continue
		}
		if err := s.SpecialDays.MarkReminded(day.ID, key, now); err != nil {
			klog.Errorf("Error marking special day %s reminded: %v", day.ID, err)
		}
		sent++
	}
	return sent, nil
}

// NextOccurrence computes the date a special day next falls on and how
// many whole days away it is. ok is false when the occurrence is past
// or beyond the reminder horizon. Recurring days re-anchor their
// month/day onto the current year and roll to next year once passed;
// Feb 29 anchors normalize to Mar 1 outside leap years.
func NextOccurrence(date time.Time, recurring bool, now time.Time) (time.Time, int, bool) {
	today := dateOnly(now)
	occurrence := dateOnly(date)
	if recurring {
		occurrence = time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		if occurrence.Before(today) {
			occurrence = time.Date(today.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	daysUntil := int(occurrence.Sub(today).Hours() / 24)
	if daysUntil < 0 || daysUntil > specialDayHorizonDays {
		return occurrence, daysUntil, false
	}
	return occurrence, daysUntil, true
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ReminderKey is the idempotency key for one occurrence: its ISO date.
func ReminderKey(occurrence time.Time) string {
	return occurrence.Format("2006-01-02")
}
