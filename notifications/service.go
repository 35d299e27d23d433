package notifications

import (
	"time"

	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	fcm "github.com/appleboy/go-fcm"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// PushClient is the slice of the FCM client the dispatcher needs;
// *fcm.Client satisfies it.
type PushClient interface {
	Send(msg *fcm.Message) (*fcm.Response, error)
}

type RelationshipStore interface {
	// Get returns (nil, nil) when the id does not resolve
	Get(id string) (*dbmodels.Relationship, error)
}

type UserStore interface {
	// Get returns (nil, nil) when the id does not resolve
	Get(id string) (*models.User, error)
	RemoveToken(userID string, token string) error
}

type PlanStore interface {
	DueForReminder(now time.Time) ([]dbmodels.Plan, error)
	MarkReminderSent(id uuid.UUID, at time.Time) error
}

type SpecialDayStore interface {
	All() ([]dbmodels.SpecialDay, error)
	MarkReminded(id uuid.UUID, key string, at time.Time) error
}

// Service carries the store and push handles into every notification
// entry point: the trigger adapters and the two reminder sweepers.
// Each call is an independent, stateless unit of work.
type Service struct {
	Relationships RelationshipStore
	Users         UserStore
	Plans         PlanStore
	SpecialDays   SpecialDayStore
	Dispatcher    *Dispatcher
}

// deliver sends to the given users, then prunes whatever tokens the
// provider rejected. Dispatch and prune stay separate so the
// dispatcher itself has no write side effects.
func (s *Service) deliver(userIDs []string, n *models.Notification) (*DispatchResult, error) {
	result, err := s.Dispatcher.DispatchToUsers(userIDs, n)
	if err != nil {
		return nil, err
	}
	if len(result.FailedTokens) > 0 {
		PruneTokens(s.Users, result.Owners, result.FailedTokens)
	}
	return result, nil
}

// actorName resolves a user's display name for composition. Any
// failure falls back to empty; the composer substitutes a neutral
// name.
func (s *Service) actorName(id string) string {
	user, err := s.Users.Get(id)
	if err != nil {
		klog.V(3).Infof("Unable to load actor %s for naming: %v", id, err)
		return ""
	}
	if user == nil {
		return ""
	}
	return user.DisplayName
}
