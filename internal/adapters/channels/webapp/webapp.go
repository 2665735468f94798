package webapp

import (
	"fmt"

	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
)

type publisher interface {
	Publish(topic string, payload interface{})
}

// Adapter pushes notifications to currently connected webapp clients over
// their per-user topic. Recipient filtering has already happened upstream.
type Adapter struct {
	hub publisher
}

func NewAdapter(hub publisher) *Adapter {
	return &Adapter{
		hub: hub,
	}
}

// Topic returns the live-feed destination of one user.
func Topic(userID int64) string {
	return fmt.Sprintf("/topic/users/%d/notifications", userID)
}

func (a *Adapter) Deliver(view dto.CourseNotificationDTO, recipients []entity.User) {
	for _, recipient := range recipients {
		a.hub.Publish(Topic(recipient.ID), view)
	}
}
