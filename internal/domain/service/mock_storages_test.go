package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/internal/domain/notification"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

var errCacheMiss = errors.New("cache miss")

// ── Mock notification storage ──

type mockNotificationStorage struct {
	mu            sync.Mutex
	notifications map[string]*entity.CourseNotification
	seq           int
}

func newMockNotificationStorage() *mockNotificationStorage {
	return &mockNotificationStorage{notifications: make(map[string]*entity.CourseNotification)}
}

func (m *mockNotificationStorage) Create(_ context.Context, n *entity.CourseNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == "" {
		m.seq++
		n.ID = fmt.Sprintf("notif-%d", m.seq)
	}
	for i := range n.Parameters {
		n.Parameters[i].NotificationID = n.ID
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationStorage) GetPageForUser(_ context.Context, _, courseID int64, offset, limit int) ([]entity.CourseNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.CourseNotification
	for _, n := range m.notifications {
		if n.CourseID == courseID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if offset >= len(result) {
		return nil, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (m *mockNotificationStorage) CountForUser(_ context.Context, _, courseID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStorage) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, n := range m.notifications {
		if !n.ExpiresAt.After(before) {
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

// ── Mock status storage ──

type statusKey struct {
	notificationID string
	userID         int64
}

type mockStatusStorage struct {
	mu       sync.Mutex
	statuses map[statusKey]*entity.UserCourseNotificationStatus
}

func newMockStatusStorage() *mockStatusStorage {
	return &mockStatusStorage{statuses: make(map[statusKey]*entity.UserCourseNotificationStatus)}
}

func (m *mockStatusStorage) BatchCreate(_ context.Context, statuses []entity.UserCourseNotificationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range statuses {
		key := statusKey{statuses[i].NotificationID, statuses[i].UserID}
		if _, exists := m.statuses[key]; exists {
			continue
		}
		s := statuses[i]
		m.statuses[key] = &s
	}
	return nil
}

func (m *mockStatusStorage) GetForNotifications(_ context.Context, userID int64, notificationIDs []string) ([]entity.UserCourseNotificationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.UserCourseNotificationStatus
	for _, id := range notificationIDs {
		if s, ok := m.statuses[statusKey{id, userID}]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStatusStorage) UpdateStatus(_ context.Context, userID int64, notificationIDs []string, status entity.NotificationStatusType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range notificationIDs {
		if s, ok := m.statuses[statusKey{id, userID}]; ok {
			s.Status = status
		}
	}
	return nil
}

func (m *mockStatusStorage) ArchiveAllForUser(_ context.Context, courseID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.statuses {
		if s.UserID == userID && s.CourseID == courseID {
			s.Status = entity.NotificationStatusArchived
		}
	}
	return nil
}

func (m *mockStatusStorage) rowsFor(notificationID string) []entity.UserCourseNotificationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.UserCourseNotificationStatus
	for key, s := range m.statuses {
		if key.notificationID == notificationID {
			result = append(result, *s)
		}
	}
	return result
}

// ── Mock preset selection storage ──

type pairKey struct {
	userID   int64
	courseID int64
}

type mockSelectionStorage struct {
	selections map[pairKey]*entity.UserCourseSettingPreset
	reads      int
}

func newMockSelectionStorage() *mockSelectionStorage {
	return &mockSelectionStorage{selections: make(map[pairKey]*entity.UserCourseSettingPreset)}
}

func (m *mockSelectionStorage) Get(_ context.Context, userID, courseID int64) (*entity.UserCourseSettingPreset, error) {
	m.reads++
	if s, ok := m.selections[pairKey{userID, courseID}]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSelectionStorage) Put(_ context.Context, selection *entity.UserCourseSettingPreset) error {
	m.selections[pairKey{selection.UserID, selection.CourseID}] = selection
	return nil
}

// ── Mock specification storage ──

type mockSpecStorage struct {
	specs map[pairKey][]entity.UserCourseNotificationSpecification
	reads int
}

func newMockSpecStorage() *mockSpecStorage {
	return &mockSpecStorage{specs: make(map[pairKey][]entity.UserCourseNotificationSpecification)}
}

func (m *mockSpecStorage) GetAllForUserCourse(_ context.Context, userID, courseID int64) ([]entity.UserCourseNotificationSpecification, error) {
	m.reads++
	return m.specs[pairKey{userID, courseID}], nil
}

func (m *mockSpecStorage) Put(_ context.Context, spec *entity.UserCourseNotificationSpecification) error {
	key := pairKey{spec.UserID, spec.CourseID}
	for i := range m.specs[key] {
		if m.specs[key][i].Type == spec.Type {
			m.specs[key][i] = *spec
			return nil
		}
	}
	m.specs[key] = append(m.specs[key], *spec)
	return nil
}

// ── Mock settings cache ──

type mockSettingsCache struct {
	mu     sync.Mutex
	values map[pairKey]*entity.UserCourseNotificationSettings
	clears int
}

func newMockSettingsCache() *mockSettingsCache {
	return &mockSettingsCache{values: make(map[pairKey]*entity.UserCourseNotificationSettings)}
}

func (m *mockSettingsCache) Get(_ context.Context, userID, courseID int64) (*entity.UserCourseNotificationSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[pairKey{userID, courseID}]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *mockSettingsCache) Set(_ context.Context, userID, courseID int64, settings *entity.UserCourseNotificationSettings, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[pairKey{userID, courseID}] = settings
}

func (m *mockSettingsCache) Clear(_ context.Context, userID, courseID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, pairKey{userID, courseID})
	m.clears++
	return nil
}

// ── Mock page cache ──

type pageKey struct {
	userID   int64
	courseID int64
	page     int
	size     int
}

type mockPageCache struct {
	mu     sync.Mutex
	pages  map[pageKey]*dto.CourseNotificationPage
	counts map[pairKey]int64
	hits   int
}

func newMockPageCache() *mockPageCache {
	return &mockPageCache{
		pages:  make(map[pageKey]*dto.CourseNotificationPage),
		counts: make(map[pairKey]int64),
	}
}

func (m *mockPageCache) GetPage(_ context.Context, userID, courseID int64, page, size int) (*dto.CourseNotificationPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.pages[pageKey{userID, courseID, page, size}]; ok {
		m.hits++
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *mockPageCache) SetPage(_ context.Context, userID, courseID int64, page, size int, value *dto.CourseNotificationPage, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[pageKey{userID, courseID, page, size}] = value
}

func (m *mockPageCache) GetCount(_ context.Context, userID, courseID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.counts[pairKey{userID, courseID}]; ok {
		return v, nil
	}
	return 0, errCacheMiss
}

func (m *mockPageCache) SetCount(_ context.Context, userID, courseID int64, count int64, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[pairKey{userID, courseID}] = count
}

// Invalidate implements the pageCache contract of the invalidation service.
func (m *mockPageCache) Invalidate(_ context.Context, userID, courseID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.pages {
		if key.userID == userID && key.courseID == courseID {
			delete(m.pages, key)
		}
	}
	delete(m.counts, pairKey{userID, courseID})
	return nil
}

// ── Recording test doubles ──

type recordingAdapter struct {
	mu         sync.Mutex
	deliveries [][]entity.User
}

func (a *recordingAdapter) Deliver(_ dto.CourseNotificationDTO, recipients []entity.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deliveries = append(a.deliveries, recipients)
}

func (a *recordingAdapter) recipients() []entity.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	var all []entity.User
	for _, d := range a.deliveries {
		all = append(all, d...)
	}
	return all
}

type recordingInvalidator struct {
	mu    sync.Mutex
	pairs []pairKey
}

func (r *recordingInvalidator) InvalidatePages(userID, courseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs = append(r.pairs, pairKey{userID, courseID})
	return nil
}

func (r *recordingInvalidator) InvalidatePagesForUsers(userIDs []int64, courseID int64) error {
	for _, id := range userIDs {
		if err := r.InvalidatePages(id, courseID); err != nil {
			return err
		}
	}
	return nil
}

// allowAllFilter passes every candidate through for every channel.
type allowAllFilter struct{}

func (allowAllFilter) FilterRecipients(_ context.Context, _ notification.Variant, candidates []entity.User, _ notification.Channel) []entity.User {
	return candidates
}
