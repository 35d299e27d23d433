package notifications

import (
	"strings"
	"testing"

	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"github.com/adilemreee/sevgilim-sub001/utils"
)

func pairedService() (*Service, *fakeUserStore, *fakePush) {
	svc, rels, users, push := newTestService()
	rels.rels["r1"] = &dbmodels.Relationship{ID: "r1", User1ID: "u1", User2ID: "u2"}
	users.add("u1", "Ayşe", "t-u1")
	users.add("u2", "Emre", "t-u2")
	return svc, users, push
}

func TestMemoryCreatedNotifiesPartner(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandleMemoryCreated("m1", map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"title":          "Picnic",
		"location":       "Moda",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, 1, len(push.messages))
	// The actor is never a recipient
	utils.AssertEqual(t, []string{"t-u2"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Ayşe added a new memory", push.messages[0].Notification.Title)
	utils.AssertEqual(t, "Picnic • Moda", push.messages[0].Notification.Body)
}

func TestMemoryCreatedMalformed(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandleMemoryCreated("m1", map[string]interface{}{"title": "Picnic"})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, false, processed)
	utils.AssertEqual(t, 0, len(push.messages))
}

func TestMemoryCreatedDanglingRelationship(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandleMemoryCreated("m1", map[string]interface{}{
		"relationshipId": "deleted",
		"createdBy":      "u1",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, false, processed)
	utils.AssertEqual(t, 0, len(push.messages))
}

func TestPhotoCreatedNotifiesPartner(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandlePhotoCreated("p1", map[string]interface{}{
		"relationshipId": "r1",
		"uploadedBy":     "u2",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u1"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Emre added a new photo", push.messages[0].Notification.Title)
}

func TestStoryCreatedNotifiesPartner(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandleStoryChange("s1", nil, map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u2"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Ayşe shared a new story", push.messages[0].Notification.Title)
}

func TestStoryLikeNotifiesOwner(t *testing.T) {
	svc, _, push := pairedService()

	before := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{},
	}
	after := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{"u2"},
	}
	processed, err := svc.HandleStoryChange("s1", before, after)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u1"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Emre liked your story", push.messages[0].Notification.Title)
}

func TestStoryLikeByOwnerIsSkipped(t *testing.T) {
	svc, _, push := pairedService()

	after := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{"u1"},
	}
	processed, err := svc.HandleStoryChange("s1", map[string]interface{}{
		"relationshipId": "r1", "createdBy": "u1",
	}, after)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, false, processed)
	utils.AssertEqual(t, 0, len(push.messages))
}

func TestStoryLikeNamesFirstNewLikerOnly(t *testing.T) {
	svc, users, push := pairedService()
	users.add("u3", "Deniz")

	before := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{},
	}
	after := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{"u2", "u3"},
	}
	processed, err := svc.HandleStoryChange("s1", before, after)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	// A concurrent like by a third user does not suppress the first,
	// and only the first new liker is named
	utils.AssertEqual(t, 1, len(push.messages))
	utils.AssertEqual(t, "Emre liked your story", push.messages[0].Notification.Title)
}

func TestStoryLikeNoNewLikers(t *testing.T) {
	svc, _, push := pairedService()

	snap := map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"likedBy":        []interface{}{"u2"},
	}
	processed, err := svc.HandleStoryChange("s1", snap, snap)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, false, processed)
	utils.AssertEqual(t, 0, len(push.messages))
}

func TestNewLikers(t *testing.T) {
	utils.AssertEqual(t, []string{"u2", "u3"}, newLikers([]string{}, []string{"u2", "u3"}, "u1"))
	utils.AssertEqual(t, []string{"u3"}, newLikers([]string{"u2"}, []string{"u2", "u3"}, "u1"))
	utils.AssertEqual(t, []string{}, newLikers([]string{}, []string{"u1"}, "u1"))
	utils.AssertEqual(t, []string{}, newLikers(nil, nil, "u1"))
}

func TestMessageCreatedTruncatesBody(t *testing.T) {
	svc, _, push := pairedService()

	long := strings.Repeat("m", 150)
	processed, err := svc.HandleMessageCreated("msg1", map[string]interface{}{
		"relationshipId": "r1",
		"senderId":       "u2",
		"text":           long,
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u1"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, strings.Repeat("m", 117)+"…", push.messages[0].Notification.Body)
}

func TestMessageCreatedEmptyTextFallback(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandleMessageCreated("msg1", map[string]interface{}{
		"relationshipId": "r1",
		"senderId":       "u1",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, "Sent a photo", push.messages[0].Notification.Body)
}

func TestPlanCreatedExcludesCreator(t *testing.T) {
	svc, _, push := pairedService()

	processed, err := svc.HandlePlanCreated("pl1", map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
		"title":          "Dinner",
		"date":           "2024-06-03T18:30:00Z",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u2"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Dinner • Mon, Jun 3 at 6:30 PM", push.messages[0].Notification.Body)
}

func TestPlanUpdatedNoTrackedChanges(t *testing.T) {
	svc, _, push := pairedService()

	snap := map[string]interface{}{
		"relationshipId": "r1",
		"title":          "Dinner",
		"updatedBy":      "u1",
	}
	processed, err := svc.HandlePlanUpdated("pl1", snap, snap)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, false, processed)
	utils.AssertEqual(t, 0, len(push.messages))
}

func TestPlanUpdatedExcludesEditor(t *testing.T) {
	svc, _, push := pairedService()

	before := map[string]interface{}{"relationshipId": "r1", "title": "Dinner"}
	after := map[string]interface{}{"relationshipId": "r1", "title": "Dinner out", "updatedBy": "u2"}
	processed, err := svc.HandlePlanUpdated("pl1", before, after)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u1"}, push.messages[0].RegistrationIDs)
	utils.AssertEqual(t, "Plan updated: Dinner out", push.messages[0].Notification.Title)
	utils.AssertEqual(t, "new title", push.messages[0].Notification.Body)
}

func TestPlanUpdatedUnknownEditorNotifiesEveryone(t *testing.T) {
	svc, _, push := pairedService()

	before := map[string]interface{}{"relationshipId": "r1", "title": "Dinner"}
	after := map[string]interface{}{"relationshipId": "r1", "title": "Dinner", "isCompleted": true}
	processed, err := svc.HandlePlanUpdated("pl1", before, after)
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{"t-u1", "t-u2"}, push.messages[0].RegistrationIDs)
}

func TestTriggerPrunesFailedTokens(t *testing.T) {
	svc, users, push := pairedService()
	push.failTokens["t-u2"] = true

	processed, err := svc.HandleMemoryCreated("m1", map[string]interface{}{
		"relationshipId": "r1",
		"createdBy":      "u1",
	})
	utils.AssertEqual(t, nil, err)
	utils.AssertEqual(t, true, processed)
	utils.AssertEqual(t, []string{}, users.tokensOf("u2"))
}
