package notifications

import (
	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"github.com/adilemreee/sevgilim-sub001/utils"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"
)

// Trigger adapters, one per watched collection. Each is safe to invoke
// more than once for the same logical write: the trigger mechanism is
// at-least-once and an occasional duplicate push is the accepted cost.
// Malformed documents and dangling references are silent no-ops, never
// errors; a partially-written document mid-transaction is expected
// input here. The returned bool reports whether a notification was
// dispatched.

// recipientsExcept returns the relationship members minus the actor.
// An empty actor id excludes nobody.
func recipientsExcept(rel *dbmodels.Relationship, actorID string) []string {
	recipients := []string{}
	for _, id := range utils.UniqueStrings(rel.MemberIDs()) {
		if actorID != "" && id == actorID {
			continue
		}
		recipients = append(recipients, id)
	}
	return recipients
}

// partnerRecipient resolves the relationship and the actor's partner.
// Returns rel == nil when the event should be skipped.
func (s *Service) partnerRecipient(relationshipID, actorID string) (*dbmodels.Relationship, string, error) {
	rel, err := s.Relationships.Get(relationshipID)
	if err != nil {
		return nil, "", err
	}
	if rel == nil {
		return nil, "", nil
	}
	partner := rel.PartnerOf(actorID)
	if partner == "" || partner == actorID {
		// A degenerate pairing leaves nobody to notify
		return nil, "", nil
	}
	return rel, partner, nil
}

func (s *Service) HandleMemoryCreated(id string, after map[string]interface{}) (bool, error) {
	var event models.MemoryEvent
	if err := mapstructure.Decode(after, &event); err != nil {
		klog.V(3).Infof("Ignoring malformed memory document %s: %v", id, err)
		return false, nil
	}
	if event.RelationshipID == "" || event.CreatedBy == "" {
		klog.V(3).Infof("Memory %s missing relationship or author, skipping", id)
		return false, nil
	}
	_, partner, err := s.partnerRecipient(event.RelationshipID, event.CreatedBy)
	if err != nil {
		return false, err
	}
	if partner == "" {
		return false, nil
	}
	n := ComposeMemoryNew(s.actorName(event.CreatedBy), event.Title, event.Location, event.RelationshipID)
	if _, err := s.deliver([]string{partner}, n); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) HandlePhotoCreated(id string, after map[string]interface{}) (bool, error) {
	var event models.PhotoEvent
	if err := mapstructure.Decode(after, &event); err != nil {
		klog.V(3).Infof("Ignoring malformed photo document %s: %v", id, err)
		return false, nil
	}
	if event.RelationshipID == "" || event.UploadedBy == "" {
		klog.V(3).Infof("Photo %s missing relationship or uploader, skipping", id)
		return false, nil
	}
	_, partner, err := s.partnerRecipient(event.RelationshipID, event.UploadedBy)
	if err != nil {
		return false, err
	}
	if partner == "" {
		return false, nil
	}
	n := ComposePhotoNew(s.actorName(event.UploadedBy), event.Title, event.Location, event.RelationshipID)
	if _, err := s.deliver([]string{partner}, n); err != nil {
		return false, err
	}
	return true, nil
}

// HandleStoryChange covers both story writes: a create notifies the
// partner, an update is treated as a like diff against the previous
// likedBy list.
func (s *Service) HandleStoryChange(id string, before, after map[string]interface{}) (bool, error) {
	var snapshot models.StorySnapshot
	if err := mapstructure.Decode(after, &snapshot); err != nil {
		klog.V(3).Infof("Ignoring malformed story document %s: %v", id, err)
		return false, nil
	}
	if snapshot.RelationshipID == "" || snapshot.CreatedBy == "" {
		klog.V(3).Infof("Story %s missing relationship or owner, skipping", id)
		return false, nil
	}

	if before == nil {
		_, partner, err := s.partnerRecipient(snapshot.RelationshipID, snapshot.CreatedBy)
		if err != nil {
			return false, err
		}
		if partner == "" {
			return false, nil
		}
		n := ComposeStoryNew(s.actorName(snapshot.CreatedBy), snapshot.RelationshipID)
		if _, err := s.deliver([]string{partner}, n); err != nil {
			return false, err
		}
		return true, nil
	}

	var previous models.StorySnapshot
	if err := mapstructure.Decode(before, &previous); err != nil {
		klog.V(3).Infof("Ignoring malformed story snapshot %s: %v", id, err)
		return false, nil
	}
	likers := newLikers(previous.LikedBy, snapshot.LikedBy, snapshot.CreatedBy)
	if len(likers) == 0 {
		return false, nil
	}
	rel, err := s.Relationships.Get(snapshot.RelationshipID)
	if err != nil {
		return false, err
	}
	if rel == nil {
		return false, nil
	}
	// Simultaneous likes are not enumerated; the title names the first
	// new liker only.
	n := ComposeStoryLike(s.actorName(likers[0]), id)
	if _, err := s.deliver([]string{snapshot.CreatedBy}, n); err != nil {
		return false, err
	}
	return true, nil
}

// newLikers returns the likers present after but not before, with the
// story owner excluded, in after-list order.
func newLikers(before, after []string, ownerID string) []string {
	likers := []string{}
	for _, id := range utils.UniqueStrings(after) {
		if id == ownerID {
			continue
		}
		if slices.Contains(before, id) {
			continue
		}
		likers = append(likers, id)
	}
	return likers
}

func (s *Service) HandleMessageCreated(id string, after map[string]interface{}) (bool, error) {
	var event models.MessageEvent
	if err := mapstructure.Decode(after, &event); err != nil {
		klog.V(3).Infof("Ignoring malformed message document %s: %v", id, err)
		return false, nil
	}
	if event.RelationshipID == "" || event.SenderID == "" {
		klog.V(3).Infof("Message %s missing relationship or sender, skipping", id)
		return false, nil
	}
	_, partner, err := s.partnerRecipient(event.RelationshipID, event.SenderID)
	if err != nil {
		return false, err
	}
	if partner == "" {
		return false, nil
	}
	n := ComposeMessageNew(s.actorName(event.SenderID), event.Text, event.RelationshipID)
	if _, err := s.deliver([]string{partner}, n); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) HandlePlanCreated(id string, after map[string]interface{}) (bool, error) {
	var plan models.PlanSnapshot
	if err := mapstructure.Decode(after, &plan); err != nil {
		klog.V(3).Infof("Ignoring malformed plan document %s: %v", id, err)
		return false, nil
	}
	if plan.RelationshipID == "" || plan.CreatedBy == "" {
		klog.V(3).Infof("Plan %s missing relationship or creator, skipping", id)
		return false, nil
	}
	rel, err := s.Relationships.Get(plan.RelationshipID)
	if err != nil {
		return false, err
	}
	if rel == nil {
		return false, nil
	}
	recipients := recipientsExcept(rel, plan.CreatedBy)
	if len(recipients) == 0 {
		return false, nil
	}
	date, hasDate := models.ParseDocTime(plan.Date)
	n := ComposePlanNew(s.actorName(plan.CreatedBy), plan.Title, date, hasDate, plan.RelationshipID)
	if _, err := s.deliver(recipients, n); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) HandlePlanUpdated(id string, before, after map[string]interface{}) (bool, error) {
	var previous, current models.PlanSnapshot
	if err := mapstructure.Decode(before, &previous); err != nil {
		klog.V(3).Infof("Ignoring malformed plan snapshot %s: %v", id, err)
		return false, nil
	}
	if err := mapstructure.Decode(after, &current); err != nil {
		klog.V(3).Infof("Ignoring malformed plan document %s: %v", id, err)
		return false, nil
	}
	if current.RelationshipID == "" {
		klog.V(3).Infof("Plan %s missing relationship, skipping", id)
		return false, nil
	}
	n := ComposePlanUpdate(current.Title, PlanChanges(&previous, &current), current.RelationshipID)
	if n == nil {
		return false, nil
	}
	rel, err := s.Relationships.Get(current.RelationshipID)
	if err != nil {
		return false, err
	}
	if rel == nil {
		return false, nil
	}
	// An unknown editor notifies every member, the editor included.
	recipients := recipientsExcept(rel, current.UpdatedBy)
	if len(recipients) == 0 {
		return false, nil
	}
	if _, err := s.deliver(recipients, n); err != nil {
		return false, err
	}
	return true, nil
}
