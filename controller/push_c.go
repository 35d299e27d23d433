package controller

import (
	"strings"

	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/notifications"
	"github.com/adilemreee/sevgilim-sub001/utils"
	fcm "github.com/appleboy/go-fcm"
	"github.com/gofiber/fiber/v2"
	"k8s.io/klog/v2"
)

// PushController is the direct-send HTTP surface, bypassing the event
// and sweep paths.
type PushController struct {
	PushClient notifications.PushClient
}

// HandleSend sends a push to a single token, a token list, or a topic.
func (pc *PushController) HandleSend(c *fiber.Ctx) error {
	var req models.PushRequest
	if err := c.BodyParser(&req); err != nil {
		klog.Errorf("Error unmarshalling push request: %v", err)
		return ErrInvalidRequest(c)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return ErrBadRequest(c, "title and body are required")
	}
	if pc.PushClient == nil {
		return ErrInternalServerError(c, "push delivery is not configured")
	}

	klog.Infof("Received direct push request from %s", utils.IPAddress(c))

	notification := &fcm.Notification{
		Title: req.Title,
		Body:  req.Body,
		Sound: "default",
	}
	data := notifications.SanitizeData(req.Data)

	switch {
	case req.Token != "":
		resp, err := pc.PushClient.Send(&fcm.Message{
			To:           req.Token,
			Priority:     "high",
			Notification: notification,
			Data:         data,
		})
		if err != nil {
			klog.Errorf("Error sending push to token: %v", err)
			return ErrInternalServerError(c, err.Error())
		}
		return c.Status(fiber.StatusOK).JSON(&models.PushResponse{
			Success: true,
			Sent:    resp.Success,
			Failed:  resp.Failure,
		})
	case len(req.Tokens) > 0:
		tokens := utils.UniqueStrings(req.Tokens)
		if len(tokens) == 0 {
			return ErrBadRequest(c, "tokens must contain at least one value")
		}
		resp, err := pc.PushClient.Send(&fcm.Message{
			RegistrationIDs: tokens,
			Priority:        "high",
			Notification:    notification,
			Data:            data,
		})
		if err != nil {
			klog.Errorf("Error sending multicast push: %v", err)
			return ErrInternalServerError(c, err.Error())
		}
		return c.Status(fiber.StatusOK).JSON(&models.PushResponse{
			Success: true,
			Sent:    resp.Success,
			Failed:  resp.Failure,
		})
	case req.Topic != "":
		_, err := pc.PushClient.Send(&fcm.Message{
			To:           "/topics/" + req.Topic,
			Priority:     "high",
			Notification: notification,
			Data:         data,
		})
		if err != nil {
			klog.Errorf("Error sending topic push: %v", err)
			return ErrInternalServerError(c, err.Error())
		}
		return c.Status(fiber.StatusOK).JSON(&models.TopicPushResponse{
			Success: true,
			Topic:   req.Topic,
		})
	default:
		return ErrBadRequest(c, "one of token, tokens or topic is required")
	}
}
