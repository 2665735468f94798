package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/redis/go-redis/v9"
)

// Storage caches rendered notification pages. One cache entry exists per
// (user, course, page, size) combination, plus one count entry per
// (user, course), so invalidation has to be prefix-based.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func pageKey(userID, courseID int64, page, size int) string {
	return fmt.Sprintf("notif_%d_%d_%d_%d", userID, courseID, page, size)
}

func countKey(userID, courseID int64) string {
	return fmt.Sprintf("notif_count_%d_%d", userID, courseID)
}

// GetPage returns the cached page, or redis.Nil when there is none.
func (s *Storage) GetPage(ctx context.Context, userID, courseID int64, page, size int) (*dto.CourseNotificationPage, error) {
	raw, err := s.redis.Get(ctx, pageKey(userID, courseID, page, size)).Result()
	if err != nil {
		return nil, err
	}

	var cached dto.CourseNotificationPage
	if err = json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (s *Storage) SetPage(ctx context.Context, userID, courseID int64, page, size int, value *dto.CourseNotificationPage, expiration time.Duration) {
	raw, _ := json.Marshal(value)
	s.redis.Set(ctx, pageKey(userID, courseID, page, size), raw, expiration)
}

func (s *Storage) GetCount(ctx context.Context, userID, courseID int64) (int64, error) {
	return s.redis.Get(ctx, countKey(userID, courseID)).Int64()
}

func (s *Storage) SetCount(ctx context.Context, userID, courseID int64, count int64, expiration time.Duration) {
	s.redis.Set(ctx, countKey(userID, courseID), count, expiration)
}

// Invalidate removes every cached page for the (user, course) pair, whatever
// page number and size it was cached under, plus the count entry. A zero id is
// a caller bug, not a cache miss, and is reported as such.
func (s *Storage) Invalidate(ctx context.Context, userID, courseID int64) error {
	if userID == 0 {
		return errorz.InvalidUserID
	}
	if courseID == 0 {
		return errorz.InvalidCourseID
	}

	iter := s.redis.Scan(ctx, 0, fmt.Sprintf("notif_%d_%d_*", userID, courseID), 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	keys = append(keys, countKey(userID, courseID))
	return s.redis.Del(ctx, keys...).Err()
}
