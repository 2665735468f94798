package postgres

import (
	"context"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// Create persists a notification record together with its parameter rows in
// one transaction.
func (s *NotificationStorage) Create(ctx context.Context, notification *entity.CourseNotification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

// Get returns a single notification with its parameters.
func (s *NotificationStorage) Get(ctx context.Context, id string) (*entity.CourseNotification, error) {
	var notification entity.CourseNotification
	err := s.db.WithContext(ctx).Preload("Parameters").Where("id = ?", id).First(&notification).Error
	return &notification, err
}

// GetPageForUser returns the non-archived notifications of a user in a course,
// newest first, with their parameters preloaded.
func (s *NotificationStorage) GetPageForUser(ctx context.Context, userID, courseID int64, offset, limit int) ([]entity.CourseNotification, error) {
	var notifications []entity.CourseNotification
	err := s.db.WithContext(ctx).
		Joins("JOIN user_course_notification_statuses ON user_course_notification_statuses.notification_id = course_notifications.id AND user_course_notification_statuses.user_id = ?", userID).
		Where("course_notifications.course_id = ? AND user_course_notification_statuses.status <> ?", courseID, entity.NotificationStatusArchived).
		Order("course_notifications.created_at DESC").
		Offset(offset).Limit(limit).
		Preload("Parameters").
		Find(&notifications).Error
	return notifications, err
}

// CountForUser counts the non-archived notifications of a user in a course.
func (s *NotificationStorage) CountForUser(ctx context.Context, userID, courseID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.CourseNotification{}).
		Joins("JOIN user_course_notification_statuses ON user_course_notification_statuses.notification_id = course_notifications.id AND user_course_notification_statuses.user_id = ?", userID).
		Where("course_notifications.course_id = ? AND user_course_notification_statuses.status <> ?", courseID, entity.NotificationStatusArchived).
		Count(&count).Error
	return count, err
}

// DeleteExpired removes notifications past their retention time, including
// their parameter and status rows.
func (s *NotificationStorage) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&entity.CourseNotification{}).Select("id").Where("expires_at <= ?", before)
		if err := tx.Where("notification_id IN (?)", expired).Delete(&entity.NotificationParameter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notification_id IN (?)", expired).Delete(&entity.UserCourseNotificationStatus{}).Error; err != nil {
			return err
		}
		res := tx.Where("expires_at <= ?", before).Delete(&entity.CourseNotification{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
