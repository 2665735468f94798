package dto

import (
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/internal/domain/notification"
)

// CourseNotificationDTO is the display form of one notification, shared by the
// read path and every delivery channel.
type CourseNotificationDTO struct {
	ID           string                        `json:"id"`
	CourseID     int64                         `json:"courseId"`
	Type         string                        `json:"notificationType"`
	Category     notification.Category         `json:"category"`
	CreationDate time.Time                     `json:"creationDate"`
	Status       entity.NotificationStatusType `json:"status,omitempty"`
	Parameters   map[string]string             `json:"parameters"`
}

// CourseNotificationPage is one cached page of a user's notification feed.
type CourseNotificationPage struct {
	Content []CourseNotificationDTO `json:"content"`
	Page    int                     `json:"page"`
	Size    int                     `json:"size"`
	Total   int64                   `json:"total"`
}

// NotificationPresetDTO carries a preset's full enablement matrix for the
// settings UI.
type NotificationPresetDTO struct {
	ID       int16                                   `json:"id"`
	Name     string                                  `json:"name"`
	Settings map[int16]map[notification.Channel]bool `json:"settings"`
}
