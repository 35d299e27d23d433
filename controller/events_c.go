package controller

import (
	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"
)

// EventController receives document-change webhooks from the trigger
// infrastructure and routes them to the matching adapter. Upstream
// delivery is at-least-once, so a replayed or permanently-bad payload
// must be acknowledged, not errored into a retry storm.
type EventController struct {
	Service *notifications.Service
}

var watchedCollections = []string{"memories", "photos", "stories", "messages", "plans"}

type eventAck struct {
	Success   bool   `json:"success"`
	Processed bool   `json:"processed"`
	EventID   string `json:"eventId"`
}

func (ec *EventController) HandleEvent(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if !slices.Contains(watchedCollections, collection) {
		return ErrBadRequest(c, "unknown collection")
	}

	var change models.ChangeEvent
	if err := c.BodyParser(&change); err != nil {
		klog.Errorf("Error unmarshalling change event: %v", err)
		return ErrInvalidRequest(c)
	}

	eventID := uuid.New().String()
	klog.V(3).Infof("Event %s: %s write for document %s", eventID, collection, change.ID)

	var processed bool
	var err error
	switch collection {
	case "memories":
		processed, err = ec.Service.HandleMemoryCreated(change.ID, change.After)
	case "photos":
		processed, err = ec.Service.HandlePhotoCreated(change.ID, change.After)
	case "stories":
		processed, err = ec.Service.HandleStoryChange(change.ID, change.Before, change.After)
	case "messages":
		processed, err = ec.Service.HandleMessageCreated(change.ID, change.After)
	case "plans":
		if change.Before == nil {
			processed, err = ec.Service.HandlePlanCreated(change.ID, change.After)
		} else {
			processed, err = ec.Service.HandlePlanUpdated(change.ID, change.Before, change.After)
		}
	}
	if err != nil {
		klog.Errorf("Event %s: %v", eventID, err)
	}
	return c.Status(fiber.StatusOK).JSON(&eventAck{
		Success:   err == nil,
		Processed: processed,
		EventID:   eventID,
	})
}
