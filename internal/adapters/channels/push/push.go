package push

import (
	"encoding/json"

	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
)

// PayloadVersion is bumped whenever the mobile clients need to distinguish
// incompatible payload shapes.
const PayloadVersion = 1

// Target identifies the devices of one recipient.
type Target struct {
	UserID       int64    `json:"userId"`
	DeviceTokens []string `json:"deviceTokens"`
}

// Payload is the mobile-specific form of a notification. Known types carry
// placeholder strings the clients template locally; unknown types fall back to
// the raw serialized view.
type Payload struct {
	Version          int               `json:"version"`
	NotificationID   string            `json:"notificationId"`
	CourseID         int64             `json:"courseId"`
	NotificationType string            `json:"notificationType"`
	Placeholders     map[string]string `json:"placeholders,omitempty"`
	Raw              json.RawMessage   `json:"payload,omitempty"`
}

// Sender is the mobile push transport collaborator.
type Sender interface {
	Send(target Target, payload Payload) error
}

// Adapter translates notification views into mobile push payloads and hands
// them to the push transport. Per-recipient transport failures are logged and
// do not affect the rest of the batch.
type Adapter struct {
	sender Sender
	logger *types.Logger
}

func NewAdapter(sender Sender, logger *types.Logger) *Adapter {
	return &Adapter{
		sender: sender,
		logger: logger,
	}
}

func (a *Adapter) Deliver(view dto.CourseNotificationDTO, recipients []entity.User) {
	payload := translate(view)

	for _, recipient := range recipients {
		if len(recipient.DeviceTokens) == 0 {
			continue
		}
		target := Target{
			UserID:       recipient.ID,
			DeviceTokens: recipient.DeviceTokens,
		}
		if err := a.sender.Send(target, payload); err != nil {
			a.logger.Errorf("failed to push notification (user_id=%d, notification_id=%s): %v", recipient.ID, view.ID, err)
		}
	}
}

// placeholderKeys lists, per notification type, the parameters the mobile
// clients know how to template.
var placeholderKeys = map[string][]string{
	"newPostNotification":          {"courseTitle", "channelName", "authorName", "postMarkdownContent"},
	"newAnnouncementNotification":  {"courseTitle", "postTitle", "authorName", "postMarkdownContent"},
	"newMentionNotification":       {"courseTitle", "channelName", "authorName", "postMarkdownContent"},
	"exerciseAssessedNotification": {"courseTitle", "exerciseName", "score", "maxPoints"},
	"channelDeletedNotification":   {"courseTitle", "channelName", "deletingUser"},
	"addedToChannelNotification":   {"courseTitle", "channelName", "addingUser"},
}

func translate(view dto.CourseNotificationDTO) Payload {
	payload := Payload{
		Version:          PayloadVersion,
		NotificationID:   view.ID,
		CourseID:         view.CourseID,
		NotificationType: view.Type,
	}

	keys, ok := placeholderKeys[view.Type]
	if !ok {
		// Untranslatable type: ship the whole view so the client can at least
		// render a generic entry.
		raw, _ := json.Marshal(view)
		payload.Raw = raw
		return payload
	}

	payload.Placeholders = make(map[string]string, len(keys))
	for _, key := range keys {
		if value, exists := view.Parameters[key]; exists {
			payload.Placeholders[key] = value
		}
	}
	return payload
}
