package postgres

import (
	"context"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusStorage struct {
	db *gorm.DB
}

func NewStatusStorage(db *gorm.DB) *StatusStorage {
	return &StatusStorage{
		db: db,
	}
}

// BatchCreate inserts the given status rows, ignoring rows that already exist
// so a redelivery cannot produce duplicates.
func (s *StatusStorage) BatchCreate(ctx context.Context, statuses []entity.UserCourseNotificationStatus) error {
	if len(statuses) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(statuses, 100).Error
}

// GetForNotifications returns the user's status rows for the given notifications.
func (s *StatusStorage) GetForNotifications(ctx context.Context, userID int64, notificationIDs []string) ([]entity.UserCourseNotificationStatus, error) {
	var statuses []entity.UserCourseNotificationStatus
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Find(&statuses).Error
	return statuses, err
}

// UpdateStatus moves the given notifications of a user to a new read state.
func (s *StatusStorage) UpdateStatus(ctx context.Context, userID int64, notificationIDs []string, status entity.NotificationStatusType) error {
	return s.db.WithContext(ctx).Model(&entity.UserCourseNotificationStatus{}).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Update("status", status).Error
}

// ArchiveAllForUser archives every status row of a user within a course.
func (s *StatusStorage) ArchiveAllForUser(ctx context.Context, courseID, userID int64) error {
	return s.db.WithContext(ctx).Model(&entity.UserCourseNotificationStatus{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("status", entity.NotificationStatusArchived).Error
}
