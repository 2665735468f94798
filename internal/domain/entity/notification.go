package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationStatusType string

const (
	NotificationStatusUnseen   NotificationStatusType = "UNSEEN"
	NotificationStatusSeen     NotificationStatusType = "SEEN"
	NotificationStatusArchived NotificationStatusType = "ARCHIVED"
)

// CourseNotification is the persisted half of a notification variant. The
// typed payload is reconstructed from Type and Parameters through the
// notification registry.
type CourseNotification struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CourseID  int64  `gorm:"not null;index"`
	Course    Course
	Type      int16     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time

	Parameters []NotificationParameter `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
}

func (n *CourseNotification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NotificationParameter is one key/value pair of a notification's parameter
// map. Owned by its CourseNotification and cascade-deleted with it.
type NotificationParameter struct {
	ID             uint   `gorm:"primaryKey"`
	NotificationID string `gorm:"not null;type:uuid;index"`
	Key            string `gorm:"not null"`
	Value          string
}

// UserCourseNotificationStatus exists only for users that were actually
// notified through at least one channel.
type UserCourseNotificationStatus struct {
	NotificationID string                 `gorm:"primaryKey;type:uuid"`
	UserID         int64                  `gorm:"primaryKey"`
	CourseID       int64                  `gorm:"not null;index"`
	Status         NotificationStatusType `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
