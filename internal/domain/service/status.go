package service

import (
	"context"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
)

type statusStorage interface {
	BatchCreate(ctx context.Context, statuses []entity.UserCourseNotificationStatus) error
	GetForNotifications(ctx context.Context, userID int64, notificationIDs []string) ([]entity.UserCourseNotificationStatus, error)
	UpdateStatus(ctx context.Context, userID int64, notificationIDs []string, status entity.NotificationStatusType) error
	ArchiveAllForUser(ctx context.Context, courseID, userID int64) error
}

type cacheInvalidator interface {
	InvalidatePages(userID, courseID int64) error
	InvalidatePagesForUsers(userIDs []int64, courseID int64) error
}

// StatusService tracks per-user read state. Every mutation invalidates the
// affected users' list caches after the write.
type StatusService struct {
	statusStorage statusStorage
	invalidation  cacheInvalidator
	logger        *types.Logger
}

func NewStatusService(statusStorage statusStorage, invalidation cacheInvalidator, logger *types.Logger) *StatusService {
	return &StatusService{
		statusStorage: statusStorage,
		invalidation:  invalidation,
		logger:        logger,
	}
}

// BatchCreateUnseen writes one UNSEEN row per notified user. Called once per
// dispatch, after all channel attempts are done.
func (s *StatusService) BatchCreateUnseen(ctx context.Context, users []entity.User, notificationID string, courseID int64) error {
	if len(users) == 0 {
		return nil
	}

	statuses := make([]entity.UserCourseNotificationStatus, 0, len(users))
	userIDs := make([]int64, 0, len(users))
	for _, user := range users {
		statuses = append(statuses, entity.UserCourseNotificationStatus{
			NotificationID: notificationID,
			UserID:         user.ID,
			CourseID:       courseID,
			Status:         entity.NotificationStatusUnseen,
		})
		userIDs = append(userIDs, user.ID)
	}

	if err := s.statusStorage.BatchCreate(ctx, statuses); err != nil {
		return err
	}
	return s.invalidation.InvalidatePagesForUsers(userIDs, courseID)
}

// UpdateStatus moves the given notifications of a user to a new read state.
func (s *StatusService) UpdateStatus(ctx context.Context, userID int64, notificationIDs []string, status entity.NotificationStatusType, courseID int64) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	if err := s.statusStorage.UpdateStatus(ctx, userID, notificationIDs, status); err != nil {
		return err
	}
	return s.invalidation.InvalidatePages(userID, courseID)
}

// ArchiveAllForUser archives every notification of a user within a course,
// e.g. when the user leaves the course. Archived notifications disappear from
// the default read path.
func (s *StatusService) ArchiveAllForUser(ctx context.Context, courseID, userID int64) error {
	if err := s.statusStorage.ArchiveAllForUser(ctx, courseID, userID); err != nil {
		return err
	}
	return s.invalidation.InvalidatePages(userID, courseID)
}
