package service

import (
	"context"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/internal/domain/notification"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"github.com/ls1intum/Artemis-sub058/pkg/taskpool"
)

const (
	defaultPageSize = 25
	pageCacheTTL    = time.Hour
)

type notificationStorage interface {
	Create(ctx context.Context, notification *entity.CourseNotification) error
	GetPageForUser(ctx context.Context, userID, courseID int64, offset, limit int) ([]entity.CourseNotification, error)
	CountForUser(ctx context.Context, userID, courseID int64) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type statusReader interface {
	GetForNotifications(ctx context.Context, userID int64, notificationIDs []string) ([]entity.UserCourseNotificationStatus, error)
}

type statusCreator interface {
	BatchCreateUnseen(ctx context.Context, users []entity.User, notificationID string, courseID int64) error
}

type userReader interface {
	GetMany(ctx context.Context, ids []int64) ([]entity.User, error)
}

type recipientFilter interface {
	FilterRecipients(ctx context.Context, variant notification.Variant, candidates []entity.User, channel notification.Channel) []entity.User
}

type notificationPageCache interface {
	GetPage(ctx context.Context, userID, courseID int64, page, size int) (*dto.CourseNotificationPage, error)
	SetPage(ctx context.Context, userID, courseID int64, page, size int, value *dto.CourseNotificationPage, expiration time.Duration)
	GetCount(ctx context.Context, userID, courseID int64) (int64, error)
	SetCount(ctx context.Context, userID, courseID int64, count int64, expiration time.Duration)
}

// ChannelAdapter is the uniform delivery contract. Implementations are
// side-effecting and must isolate per-recipient failures internally.
type ChannelAdapter interface {
	Deliver(view dto.CourseNotificationDTO, recipients []entity.User)
}

// DispatchService turns a notification variant into a persisted record and
// fans it out across the channels the variant supports. The record is fully
// persisted before any delivery attempt; delivery itself runs on the task pool
// so the triggering request is not held up by slow channels.
type DispatchService struct {
	notificationStorage notificationStorage
	statusReader        statusReader
	statusCreator       statusCreator
	users               userReader
	settings            recipientFilter
	adapters            map[notification.Channel]ChannelAdapter
	cache               notificationPageCache
	pool                *taskpool.Pool
	logger              *types.Logger
}

func NewDispatchService(
	notificationStorage notificationStorage,
	statusReader statusReader,
	statusCreator statusCreator,
	users userReader,
	settings recipientFilter,
	adapters map[notification.Channel]ChannelAdapter,
	cache notificationPageCache,
	pool *taskpool.Pool,
	logger *types.Logger,
) *DispatchService {
	return &DispatchService{
		notificationStorage: notificationStorage,
		statusReader:        statusReader,
		statusCreator:       statusCreator,
		users:               users,
		settings:            settings,
		adapters:            adapters,
		cache:               cache,
		pool:                pool,
		logger:              logger,
	}
}

// Dispatch persists the notification and schedules its delivery. From the
// caller's perspective the dispatch has succeeded once the record is stored;
// delivery failures are only observable via logs.
func (s *DispatchService) Dispatch(ctx context.Context, variant notification.Variant, recipients []entity.User) (*entity.CourseNotification, error) {
	if variant.CourseID() == 0 {
		return nil, errorz.InvalidCourseID
	}
	if _, ok := notification.ReadableType(variant.TypeCode()); !ok {
		return nil, errorz.UnknownType
	}

	now := time.Now()
	record := &entity.CourseNotification{
		CourseID:  variant.CourseID(),
		Type:      variant.TypeCode(),
		CreatedAt: now,
		ExpiresAt: now.Add(notification.CleanupDuration(variant.TypeCode())),
	}
	for key, value := range variant.Parameters() {
		record.Parameters = append(record.Parameters, entity.NotificationParameter{
			Key:   key,
			Value: value,
		})
	}

	if err := s.notificationStorage.Create(ctx, record); err != nil {
		return nil, err
	}

	view := s.toView(record, variant)
	s.pool.Submit(func() {
		s.deliver(context.Background(), variant, view, recipients)
	})
	return record, nil
}

// DispatchToUserIDs resolves the recipient ids to stored users and dispatches
// to them. Ids without a user record are dropped, so push tokens and language
// preferences always come from the database.
func (s *DispatchService) DispatchToUserIDs(ctx context.Context, variant notification.Variant, userIDs []int64) (*entity.CourseNotification, error) {
	recipients, err := s.users.GetMany(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, variant, recipients)
}

// deliver runs the per-channel fan-out. Every recipient that passed the
// settings filter for at least one channel ends up in the notified set and
// gets exactly one UNSEEN status row, however many channels reached them.
func (s *DispatchService) deliver(ctx context.Context, variant notification.Variant, view dto.CourseNotificationDTO, recipients []entity.User) {
	notified := make(map[int64]entity.User)

	for _, channel := range notification.SupportedChannels(variant.TypeCode()) {
		adapter, ok := s.adapters[channel]
		if !ok {
			continue
		}

		filtered := s.settings.FilterRecipients(ctx, variant, recipients, channel)
		if len(filtered) == 0 {
			continue
		}

		// Targeted recipients count as notified even when the adapter fails
		// for some of them; the notification stays retrievable via the feed.
		s.deliverToChannel(adapter, channel, view, filtered)
		for _, user := range filtered {
			notified[user.ID] = user
		}
	}

	if len(notified) == 0 {
		return
	}
	users := make([]entity.User, 0, len(notified))
	for _, user := range notified {
		users = append(users, user)
	}
	if err := s.statusCreator.BatchCreateUnseen(ctx, users, view.ID, view.CourseID); err != nil {
		s.logger.Errorf("failed to create status rows (notification_id=%s): %v", view.ID, err)
	}
}

func (s *DispatchService) deliverToChannel(adapter ChannelAdapter, channel notification.Channel, view dto.CourseNotificationDTO, recipients []entity.User) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("%s delivery panicked (notification_id=%s): %v", channel, view.ID, r)
		}
	}()
	adapter.Deliver(view, recipients)
}

// GetNotifications serves the paginated, non-archived notification feed of a
// user in a course, cached per (user, course, page, size). Empty pages are
// never cached so a freshly dispatched notification is not masked by an old
// empty entry.
func (s *DispatchService) GetNotifications(ctx context.Context, userID, courseID int64, page, size int) (*dto.CourseNotificationPage, error) {
	if userID == 0 {
		return nil, errorz.InvalidUserID
	}
	if courseID == 0 {
		return nil, errorz.InvalidCourseID
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	if cached, err := s.cache.GetPage(ctx, userID, courseID, page, size); err == nil {
		return cached, nil
	}

	records, err := s.notificationStorage.GetPageForUser(ctx, userID, courseID, page*size, size)
	if err != nil {
		return nil, err
	}
	total, err := s.countForUser(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	statusByID := make(map[string]entity.NotificationStatusType)
	if len(records) > 0 {
		ids := make([]string, 0, len(records))
		for _, record := range records {
			ids = append(ids, record.ID)
		}
		statuses, errStatuses := s.statusReader.GetForNotifications(ctx, userID, ids)
		if errStatuses != nil {
			return nil, errStatuses
		}
		for _, status := range statuses {
			statusByID[status.NotificationID] = status.Status
		}
	}

	content := make([]dto.CourseNotificationDTO, 0, len(records))
	for _, record := range records {
		params := make(map[string]string, len(record.Parameters))
		for _, p := range record.Parameters {
			params[p.Key] = p.Value
		}

		variant, ok := notification.FromStore(record.Type, record.CourseID, params)
		if !ok {
			// A since-removed type must not fail the whole page.
			s.logger.Warnf("skipping notification %s with unknown type code %d", record.ID, record.Type)
			continue
		}

		view := s.toView(&entity.CourseNotification{
			ID:        record.ID,
			CourseID:  record.CourseID,
			Type:      record.Type,
			CreatedAt: record.CreatedAt,
		}, variant)
		view.Status = statusByID[record.ID]
		content = append(content, view)
	}

	result := &dto.CourseNotificationPage{
		Content: content,
		Page:    page,
		Size:    size,
		Total:   total,
	}
	if len(content) > 0 {
		s.cache.SetPage(ctx, userID, courseID, page, size, result, pageCacheTTL)
	}
	return result, nil
}

func (s *DispatchService) countForUser(ctx context.Context, userID, courseID int64) (int64, error) {
	if count, err := s.cache.GetCount(ctx, userID, courseID); err == nil {
		return count, nil
	}
	count, err := s.notificationStorage.CountForUser(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.cache.SetCount(ctx, userID, courseID, count, pageCacheTTL)
	}
	return count, nil
}

// StartCleanupScheduler starts the retention sweep that removes notifications
// past their per-type cleanup duration.
func (s *DispatchService) StartCleanupScheduler(interval time.Duration) {
	s.logger.Info("Starting notification cleanup scheduler")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			deleted, err := s.notificationStorage.DeleteExpired(context.Background(), time.Now())
			if err != nil {
				s.logger.Errorf("failed to delete expired notifications: %v", err)
				continue
			}
			if deleted > 0 {
				s.logger.Infof("Deleted %d expired notifications", deleted)
			}
		}
	}()
}

func (s *DispatchService) toView(record *entity.CourseNotification, variant notification.Variant) dto.CourseNotificationDTO {
	readableType, _ := notification.ReadableType(record.Type)
	return dto.CourseNotificationDTO{
		ID:           record.ID,
		CourseID:     record.CourseID,
		Type:         readableType,
		Category:     notification.CategoryOf(record.Type),
		CreationDate: record.CreatedAt,
		Parameters:   variant.Parameters(),
	}
}
