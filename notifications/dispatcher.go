package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/adilemreee/sevgilim-sub001/models"
	fcm "github.com/appleboy/go-fcm"
	"k8s.io/klog/v2"
)

// DispatchResult tallies one multicast send.
type DispatchResult struct {
	Sent         int
	Failed       int
	FailedTokens []string
	Owners       map[string][]string
}

// Dispatcher sends a composed notification to users' device tokens via
// the push provider. It mutates nothing; pruning rejected tokens is
// the caller's call.
type Dispatcher struct {
	Users UserStore
	Push  PushClient
}

// DispatchToUsers resolves the recipients' tokens and issues one
// multicast send. Zero registered tokens is a normal state (a partner
// without a device) and yields an empty result, not an error.
func (d *Dispatcher) DispatchToUsers(userIDs []string, n *models.Notification) (*DispatchResult, error) {
	set := TokensFor(d.Users, userIDs)
	if len(set.Tokens) == 0 {
		klog.V(3).Infof("No tokens registered for recipients %v, nothing to send", userIDs)
		return &DispatchResult{Owners: set.Owners}, nil
	}
	if d.Push == nil {
		klog.V(3).Infof("Push client not configured, dropping %q", n.Title)
		return &DispatchResult{Owners: set.Owners}, nil
	}

	msg := &fcm.Message{
		RegistrationIDs: set.Tokens,
		Priority:        "high",
		Notification: &fcm.Notification{
			Title: n.Title,
			Body:  n.Body,
			Sound: "default",
		},
		Data: SanitizeData(n.Data),
	}
	resp, err := d.Push.Send(msg)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{Sent: resp.Success, Failed: resp.Failure, Owners: set.Owners}
	for i, tokenResult := range resp.Results {
		if tokenResult.Error != nil && i < len(set.Tokens) {
			result.FailedTokens = append(result.FailedTokens, set.Tokens[i])
		}
	}
	klog.Infof("Dispatched %q to %d tokens: %d ok, %d failed", n.Title, len(set.Tokens), result.Sent, result.Failed)
	return result, nil
}

// SanitizeData stringifies every metadata value once, here at the send
// boundary. The transport only carries string values; nils are
// dropped.
func SanitizeData(data map[string]interface{}) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			if encoded, err := json.Marshal(val); err == nil {
				out[k] = string(encoded)
			} else {
				out[k] = fmt.Sprintf("%v", val)
			}
		}
	}
	return out
}
