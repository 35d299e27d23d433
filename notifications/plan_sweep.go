package notifications

import (
	"time"

	"k8s.io/klog/v2"
)

// Guard against duplicate sweeps and clock overlap; a plan reminded
// within this window is not reminded again.
const planResendGuard = time.Hour

// SweepPlanReminders is the hourly due-plan scan. It returns how many
// reminders were dispatched. One bad record never aborts the batch.
func (s *Service) SweepPlanReminders(now time.Time) (int, error) {
	plans, err := s.Plans.DueForReminder(now)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, plan := range plans {
		if plan.ReminderLastSentAt != nil && now.Sub(*plan.ReminderLastSentAt) < planResendGuard {
			continue
		}
		rel, err := s.Relationships.Get(plan.RelationshipID)
		if err != nil {
			klog.Errorf("Error resolving relationship for plan %s: %v", plan.ID, err)
			continue
		}
		if rel == nil {
			continue
		}
		n := ComposePlanReminder(plan.Title, plan.Date, now, plan.RelationshipID)
		if _, err := s.deliver(recipientsExcept(rel, ""), n); err != nil {
			klog.Errorf("Error dispatching reminder for plan %s: %v", plan.ID, err)
			continue
		}
		// Marked only after the dispatch attempt: a crash in between
		// costs at most a duplicate on retry, never a silent skip.
		if err := s.Plans.MarkReminderSent(plan.ID, now); err != nil {
			klog.Errorf("Error marking reminder sent for plan %s: %v", plan.ID, err)
		}
		sent++
	}
	return sent, nil
}
